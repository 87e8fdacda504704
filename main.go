// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/**
 * Copyright 2024 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/atcmedia/assetgen/internal/config"
	"github.com/atcmedia/assetgen/internal/log"
	"github.com/atcmedia/assetgen/internal/pipeline"
	"github.com/atcmedia/assetgen/internal/pipeline/steps"
	"github.com/atcmedia/assetgen/internal/utils"
	"github.com/atcmedia/assetgen/llm/mcp"
	"github.com/atcmedia/assetgen/version"
	"golang.org/x/sync/errgroup"
)

const Usage = `assetgen <Action> [Arg] [Flags]
Action:
   generate     generate a marketing image for a client from a campaign brief
   clients      list the known clients
   brand        print the brand assets of a client (Arg: client id)
   campaigns    list the past campaigns of a client (Arg: client id)
   platforms    list the supported platform sizes
   tools        list the capabilities with their parameters
   mcp          run as a MCP server exposing every capability over stdio
   assist       ask the brand assistant a question (Arg: question)
   version      print the version of assetgen
Environment:
   API_TYPE, API_KEY, MODEL_NAME, BASE_URL   text model (ollama, ark, openai, claude, dashscope, deepseek)
   VISION_MODEL_NAME, IMAGE_MODEL_NAME       vision and image models on the same endpoint
   ASSETGEN_CONFIG                           config file, same as -c
   ASSETGEN_STORAGE, ASSETGEN_MCP_COMMAND    storage backend (local|mcp) and its server command
   ASSETGEN_OUTPUT_DIR, ASSETGEN_BRANDS_DIR  local storage directories
`

// maxParallelRuns bounds concurrent platform runs of one generate action.
const maxParallelRuns = 4

func main() {
	flags := flag.NewFlagSet("assetgen", flag.ExitOnError)

	flagHelp := flags.Bool("h", false, "Show help message.")
	flagVerbose := flags.Bool("verbose", false, "Verbose mode.")
	flagOutput := flags.String("o", "", "Write the run reports as JSON to this path ('-' for stdout).")
	flagConfig := flags.String("c", os.Getenv("ASSETGEN_CONFIG"), "Config file (YAML).")
	flagMock := flags.Bool("mock", false, "Use the offline content provider instead of models.")

	var gopts generateOptions
	flags.StringVar(&gopts.Client, "client", "", "client id, see `assetgen clients`")
	flags.StringVar(&gopts.Brief, "brief", "", "campaign brief text")
	flags.StringVar(&gopts.BriefFile, "brief-file", "", "read the campaign brief from a file")
	flags.Var((*StringArray)(&gopts.Platforms), "platform", "platform key, repeatable or comma separated (default: the configured default)")
	flags.StringVar(&gopts.Ref, "ref", "", "reference image file to take the visual style from")

	flags.Usage = func() {
		fmt.Fprint(os.Stderr, Usage)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flags.Usage()
		os.Exit(1)
	}
	action := strings.ToLower(os.Args[1])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch action {
	case "version":
		fmt.Fprintf(os.Stdout, "%s\n", version.Version)

	case "generate":
		parseArgsAndFlags(flags, false, flagHelp, flagVerbose)
		cfg := loadConfig(*flagConfig)
		a, err := newApp(ctx, cfg, appOptions{Content: true, Mock: *flagMock})
		if err != nil {
			log.Error("Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()
		reports, err := runGenerate(ctx, a, gopts)
		if err != nil {
			log.Error("%v\n", err)
			os.Exit(1)
		}
		if *flagOutput != "" {
			if err := writeJSON(*flagOutput, reports); err != nil {
				log.Error("Failed to write report: %v\n", err)
				os.Exit(1)
			}
		}
		for _, r := range reports {
			if !r.Success {
				a.Close()
				os.Exit(1)
			}
		}

	case "clients":
		parseArgsAndFlags(flags, false, flagHelp, flagVerbose)
		a := mustApp(ctx, *flagConfig, appOptions{})
		defer a.Close()
		clients, err := a.storage.ListClients(ctx)
		if err != nil {
			log.Error("Failed to list clients: %v\n", err)
			os.Exit(1)
		}
		for _, c := range clients {
			fmt.Fprintf(os.Stdout, "%-24s %-24s %s\n", c.ID, c.Name, c.Description)
		}

	case "brand":
		clientID := parseArgsAndFlags(flags, true, flagHelp, flagVerbose)
		a := mustApp(ctx, *flagConfig, appOptions{})
		defer a.Close()
		brand, err := a.storage.GetBrandAssets(ctx, clientID)
		if err != nil {
			log.Error("Failed to get brand assets: %v\n", err)
			os.Exit(1)
		}
		printJSON(brand)

	case "campaigns":
		clientID := parseArgsAndFlags(flags, true, flagHelp, flagVerbose)
		a := mustApp(ctx, *flagConfig, appOptions{})
		defer a.Close()
		campaigns, err := a.storage.GetPastCampaigns(ctx, clientID)
		if err != nil {
			log.Error("Failed to get campaigns: %v\n", err)
			os.Exit(1)
		}
		printJSON(campaigns)

	case "platforms":
		parseArgsAndFlags(flags, false, flagHelp, flagVerbose)
		cfg := loadConfig(*flagConfig)
		table, err := cfg.Table()
		if err != nil {
			log.Error("%v\n", err)
			os.Exit(1)
		}
		for _, k := range table.Keys() {
			mark := ""
			if k == table.DefaultKey() {
				mark = " (default)"
			}
			size, _ := table.Lookup(k)
			fmt.Fprintf(os.Stdout, "%-20s %-10s %s%s\n", k, size, size.Label, mark)
		}

	case "tools":
		parseArgsAndFlags(flags, false, flagHelp, flagVerbose)
		// descriptors do not depend on the content backend
		a := mustApp(ctx, *flagConfig, appOptions{Content: true, Mock: true})
		defer a.Close()
		printJSON(a.registry.Descriptors())

	case "mcp":
		parseArgsAndFlags(flags, false, flagHelp, flagVerbose)
		a := mustApp(ctx, *flagConfig, appOptions{Content: true, Mock: *flagMock})
		defer a.Close()
		svr, err := mcp.NewServer(mcp.ServerOptions{
			ServerName:    "assetgen",
			ServerVersion: version.Version,
			Verbose:       *flagVerbose,
			Registry:      a.registry,
		})
		if err != nil {
			log.Error("Failed to create MCP server: %v\n", err)
			os.Exit(1)
		}
		if err := svr.ServeStdio(); err != nil {
			log.Error("Failed to run MCP server: %v\n", err)
			os.Exit(1)
		}

	case "assist":
		question := parseArgsAndFlags(flags, true, flagHelp, flagVerbose)
		a := mustApp(ctx, *flagConfig, appOptions{Content: true, Mock: true})
		defer a.Close()
		agent, err := a.newAssistant(ctx)
		if err != nil {
			log.Error("Failed to create assistant: %v\n", err)
			os.Exit(1)
		}
		answer, err := agent.Call(ctx, question)
		if err != nil {
			log.Error("Assistant failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stdout, answer)

	default:
		fmt.Fprintf(os.Stderr, "unknown action: %s\n", action)
		flags.Usage()
		os.Exit(1)
	}
}

type generateOptions struct {
	Client    string
	Brief     string
	BriefFile string
	Platforms []string
	Ref       string
}

// runGenerate runs the workflow once per platform, concurrently, and prints
// each run's messages in platform order.
func runGenerate(ctx context.Context, a *app, opts generateOptions) ([]pipeline.Report, error) {
	if opts.Client == "" {
		return nil, fmt.Errorf("flag -client is required")
	}
	brief := opts.Brief
	if opts.BriefFile != "" {
		bs, err := os.ReadFile(opts.BriefFile)
		if err != nil {
			return nil, fmt.Errorf("read brief: %w", err)
		}
		brief = string(bs)
	}
	if strings.TrimSpace(brief) == "" {
		return nil, fmt.Errorf("flag -brief or -brief-file is required")
	}
	var ref []byte
	if opts.Ref != "" {
		bs, err := os.ReadFile(opts.Ref)
		if err != nil {
			return nil, fmt.Errorf("read reference image: %w", err)
		}
		ref = bs
	}
	platforms := splitPlatforms(opts.Platforms)
	if len(platforms) == 0 {
		platforms = []string{a.table.DefaultKey()}
	}

	engine := steps.NewEngine(a.registry, steps.Options{Platforms: a.table})
	reports := make([]pipeline.Report, len(platforms))
	var g errgroup.Group
	g.SetLimit(maxParallelRuns)
	for i, p := range platforms {
		g.Go(func() error {
			st := engine.Run(ctx, opts.Client, brief, p, ref)
			reports[i] = st.Report()
			if fileExists(st.SavedPath) {
				if err := writeJSON(st.SavedPath+".json", reports[i]); err != nil {
					log.Info("Failed to write report next to image: %v", err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range reports {
		if len(reports) > 1 {
			fmt.Fprintf(os.Stdout, "== %s ==\n", r.Platform)
		}
		for _, m := range r.Messages {
			fmt.Fprintln(os.Stdout, m)
		}
	}
	return reports, nil
}

// splitPlatforms flattens repeated and comma separated values, dropping
// blanks and duplicates.
func splitPlatforms(values []string) []string {
	seen := map[string]bool{}
	var ret []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			ret = append(ret, p)
		}
	}
	return ret
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func loadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Error("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func mustApp(ctx context.Context, configPath string, opts appOptions) *app {
	a, err := newApp(ctx, loadConfig(configPath), opts)
	if err != nil {
		log.Error("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return a
}

func printJSON(v any) {
	s, err := utils.MarshalJSONIndent(v)
	if err != nil {
		log.Error("Failed to encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, s)
}

func writeJSON(path string, v any) error {
	s, err := utils.MarshalJSONIndent(v)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = fmt.Fprintln(os.Stdout, s)
		return err
	}
	return os.WriteFile(path, []byte(s+"\n"), 0o644)
}

func parseArgsAndFlags(flags *flag.FlagSet, needArg bool, flagHelp *bool, flagVerbose *bool) (arg string) {
	rest := os.Args[2:]
	if needArg {
		if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
			fmt.Fprintf(os.Stderr, "argument is required\n")
			flags.Usage()
			os.Exit(1)
		}
		arg, rest = rest[0], rest[1:]
	}
	flags.Parse(rest)

	if flagHelp != nil && *flagHelp {
		flags.Usage()
		os.Exit(0)
	}

	if flagVerbose != nil && *flagVerbose {
		log.SetLogLevel(log.DebugLevel)
	}
	return arg
}

type StringArray []string

func (s *StringArray) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func (s *StringArray) String() string {
	return strings.Join(*s, ",")
}
