// Package main provides the webpilot command: an AI browser automation
// agent that plans a task from a natural-language query, drives a real
// browser to execute it, and synthesizes a user-friendly answer. Runs
// either as a one-shot CLI or as a web UI server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/webpilot/webpilot/pkg/config"
	"github.com/webpilot/webpilot/pkg/flow"
	"github.com/webpilot/webpilot/pkg/llm/openai"
	"github.com/webpilot/webpilot/pkg/server"
	"github.com/webpilot/webpilot/pkg/types"
)

const version = "0.1.0"

// cliConfig holds command-line configuration.
type cliConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	ConfigFile  string
	TaskFile    string
	Query       string
	Serve       bool
	Host        string
	Port        int
	Headed      bool
	Timeout     time.Duration
	Verbose     bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("webpilot v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags.
func parseFlags() *cliConfig {
	cfg := &cliConfig{}

	flag.StringVar(&cfg.APIKey, "api-key", os.Getenv("OPENAI_API_KEY"), "OpenAI-compatible API key")
	flag.StringVar(&cfg.BaseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI-compatible API base URL")
	flag.StringVar(&cfg.Model, "model", "", "LLM model to use (overrides config)")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to config file (default ~/.webpilot/config.json)")
	flag.StringVar(&cfg.TaskFile, "task", "", "Path to a YAML task file for a one-shot run")
	flag.StringVar(&cfg.Query, "query", "", "Automation query for a one-shot run")
	flag.BoolVar(&cfg.Serve, "serve", false, "Start the web UI server")
	flag.StringVar(&cfg.Host, "host", "", "Web UI host (overrides config)")
	flag.IntVar(&cfg.Port, "port", 0, "Web UI port (overrides config)")
	flag.BoolVar(&cfg.Headed, "headed", false, "Run the browser with a visible window")
	flag.DurationVar(&cfg.Timeout, "timeout", 0, "Execution timeout for the browser stage (overrides config)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Print agent activity during one-shot runs")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "WebPilot - AI Browser Automation Agent\n\n")
		fmt.Fprintf(os.Stderr, "Usage: webpilot [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # One-shot automation run\n")
		fmt.Fprintf(os.Stderr, "  webpilot -query \"give the definition of pandas:https://pandas.pydata.org/\"\n\n")
		fmt.Fprintf(os.Stderr, "  # Run from a task file\n")
		fmt.Fprintf(os.Stderr, "  webpilot -task nightly-check.yaml\n\n")
		fmt.Fprintf(os.Stderr, "  # Start the web UI\n")
		fmt.Fprintf(os.Stderr, "  webpilot -serve\n\n")
	}

	flag.Parse()
	return cfg
}

// run wires configuration, provider, and flow, then dispatches to
// serve or one-shot mode.
func run(ctx context.Context, cfg *cliConfig) error {
	if err := config.Initialize(cfg.ConfigFile); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	llmCfg := config.GetLLM()
	browserCfg := config.GetBrowser()

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = llmCfg.GetAPIKey()
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set OPENAI_API_KEY, use -api-key, or configure api_key in the llm section")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = llmCfg.GetBaseURL()
	}
	model := cfg.Model
	if model == "" {
		model = llmCfg.GetModel()
	}

	providerOpts := []openai.ProviderOption{openai.WithModel(model)}
	if baseURL != "" {
		providerOpts = append(providerOpts, openai.WithBaseURL(baseURL))
	}
	provider, err := openai.NewProvider(apiKey, providerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	headless := browserCfg.IsHeadless() && !cfg.Headed
	timeout := time.Duration(browserCfg.GetExecutionTimeoutSeconds()) * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	flowOpts := []flow.Option{
		flow.WithHeadless(headless),
		flow.WithExecutionTimeout(timeout),
		flow.WithPlannerModel(llmCfg.GetPlannerModel()),
		flow.WithExecutorModel(llmCfg.GetExecutorModel()),
		flow.WithSynthesizerModel(llmCfg.GetSynthesizerModel()),
	}

	query := cfg.Query
	if cfg.TaskFile != "" {
		task, err := config.LoadTaskFile(cfg.TaskFile)
		if err != nil {
			return err
		}
		query = task.EffectiveQuery()
		if task.Headless != nil {
			flowOpts = append(flowOpts, flow.WithHeadless(*task.Headless && !cfg.Headed))
		}
		if task.TimeoutSeconds > 0 {
			flowOpts = append(flowOpts, flow.WithExecutionTimeout(time.Duration(task.TimeoutSeconds)*time.Second))
		}
		flowOpts = append(flowOpts,
			flow.WithPlannerModel(task.Models.Planner),
			flow.WithExecutorModel(task.Models.Executor),
			flow.WithSynthesizerModel(task.Models.Synthesizer),
		)
	}

	f := flow.New(provider, flowOpts...)

	if cfg.Serve {
		return serve(ctx, f, cfg)
	}

	if query == "" {
		return fmt.Errorf("nothing to do: pass -query, -task, or -serve")
	}
	return runOnce(ctx, f, query, cfg.Verbose)
}

// serve runs the web UI until the context is canceled.
func serve(ctx context.Context, f *flow.Flow, cfg *cliConfig) error {
	serverCfg := server.DefaultConfig()
	if section := config.GetServer(); section != nil {
		serverCfg.Host = section.Host
		serverCfg.Port = section.Port
	}
	if cfg.Host != "" {
		serverCfg.Host = cfg.Host
	}
	if cfg.Port > 0 {
		serverCfg.Port = cfg.Port
	}

	srv := server.New(f, serverCfg)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// runOnce executes a single automation query and prints the result.
func runOnce(ctx context.Context, f *flow.Flow, query string, verbose bool) error {
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Failed to close browser driver: %v", err)
		}
	}()

	events := make(chan *types.AgentEvent, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			printEvent(event, verbose)
		}
	}()

	result, err := f.Run(ctx, query, events)
	close(events)
	<-done

	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(result.Response.Markdown())
	return nil
}

// printEvent renders run progress to stderr so stdout stays clean for
// the final result.
func printEvent(event *types.AgentEvent, verbose bool) {
	switch event.Type {
	case types.EventTypeStageStart:
		fmt.Fprintf(os.Stderr, "[stage] %s\n", event.Stage)
	case types.EventTypeToolCall:
		fmt.Fprintf(os.Stderr, "  [tool] %s\n", event.ToolName)
	case types.EventTypeToolResultError:
		fmt.Fprintf(os.Stderr, "  [tool] %s failed: %s\n", event.ToolName, event.ErrorMessage)
	case types.EventTypeError:
		fmt.Fprintf(os.Stderr, "[error] %s\n", event.ErrorMessage)
	case types.EventTypeThinkingContent:
		if verbose {
			fmt.Fprint(os.Stderr, event.Content)
		}
	case types.EventTypeMessageContent:
		if verbose {
			fmt.Fprint(os.Stderr, event.Content)
		}
	}
}
