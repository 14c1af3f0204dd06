package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alkime/postauto/internal/batchfile"
	"github.com/alkime/postauto/internal/catalog"
	"github.com/alkime/postauto/internal/content"
	"github.com/alkime/postauto/internal/keyring"
	"github.com/alkime/postauto/internal/pipeline"
	"github.com/alkime/postauto/internal/tui"
	"github.com/alkime/postauto/internal/tui/components/phases"
	"github.com/alkime/postauto/internal/tui/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the postauto command structure.
type CLI struct {
	Generate GenerateCmd `cmd:"" help:"Generate and publish one blog post"`
	Batch    BatchCmd    `cmd:"" help:"Generate and publish one post per CSV row"`
	Prompt   PromptCmd   `cmd:"" help:"Print the assembled prompt without calling any service"`
	Catalog  CatalogCmd  `cmd:"" help:"Browse generated posts"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`
}

// GenerateCmd generates a single post.
type GenerateCmd struct {
	Credentials

	Topic            string `flag:"" required:"" help:"Post topic"`
	Category         string `flag:"" required:"" help:"Post category"`
	InstructionsFile string `flag:"" optional:"" type:"path" help:"Instructions template (default: state directory draft)"`
	Edit             bool   `flag:"" help:"Edit the instructions in $EDITOR (or POSTAUTO_EDITOR) before generating"`
	DryRun           bool   `flag:"" help:"Publish to an in-memory store instead of GitHub"`
}

// Run executes the generate command.
func (c *GenerateCmd) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(c.Credentials, appOptions{generation: true, dryRun: c.DryRun, logToFile: true})
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // logged in Close

	var (
		instructionsPath string
		phs              []phases.Phase
	)

	if c.Edit {
		instructionsPath = c.InstructionsFile
		if instructionsPath == "" {
			instructionsPath = a.dir.InstructionsPath()
		}

		launcher := &workflow.DefaultEditorLauncher{EditorCmd: os.Getenv("POSTAUTO_EDITOR")}
		phs = append(phs, phases.NewPhase("Instructions", workflow.NewInstructionsPhase(launcher, instructionsPath)))
	} else {
		instructionsPath, err = a.instructionsPath(c.InstructionsFile)
		if err != nil {
			return err
		}
	}

	report := workflow.NewGenerateReport()
	phs = append(phs, phases.NewPhase("Generating",
		workflow.NewGeneratingPhase(ctx, a.pipeline, c.Topic, c.Category, instructionsPath, report)))

	p := tea.NewProgram(tui.New(tui.Config{Cancel: cancel, Title: "postauto"}, phs...))
	_, runErr := p.Run()

	cancel()
	report.Wait()

	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}

	if report.Err != nil {
		return report.Err
	}

	if report.Result == nil {
		fmt.Println("generation cancelled")
		return nil
	}

	res := report.Result
	fmt.Printf("%s\nquality: %.0f/100\nfeedback: %s\n", res.RemotePath, res.Assessment.Score, res.Assessment.Feedback)

	return nil
}

// BatchCmd generates one post per row of a CSV file.
type BatchCmd struct {
	Credentials

	File             string `arg:"" type:"existingfile" help:"CSV with topic, category and optional keyword columns"`
	InstructionsFile string `flag:"" optional:"" type:"path" help:"Instructions template shared by all rows"`
	StopOnError      bool   `flag:"" help:"Abort after the first failed row"`
	DryRun           bool   `flag:"" help:"Publish to an in-memory store instead of GitHub"`
}

// Run executes the batch command.
func (c *BatchCmd) Run() error {
	rows, err := batchfile.ReadFile(c.File)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return errors.New("batch file has no rows")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(c.Credentials, appOptions{generation: true, dryRun: c.DryRun, logToFile: true})
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // logged in Close

	instructionsPath, err := a.instructionsPath(c.InstructionsFile)
	if err != nil {
		return err
	}

	instructions, err := os.ReadFile(instructionsPath)
	if err != nil {
		return fmt.Errorf("failed to read instructions: %w", err)
	}

	result := workflow.NewBatchResult()
	phase := workflow.NewBatchPhase(ctx, a.pipeline, rows, string(instructions), pipeline.BatchOptions{
		StopOnError: c.StopOnError,
		ArchiveDir:  a.dir.ArchiveDir(),
	}, result)

	p := tea.NewProgram(tui.New(tui.Config{Cancel: cancel, Title: "postauto batch"}, phases.NewPhase("Batch", phase)))
	_, runErr := p.Run()

	// The run may still be committing a row after an early quit; let it
	// return before the deferred Close saves the catalog.
	cancel()
	result.Wait()

	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}

	if report := result.Report; report != nil {
		fmt.Printf("published %d of %d posts\n", report.Succeeded(), len(rows))
		if report.ArchivePath != "" {
			fmt.Printf("archive: %s\n", report.ArchivePath)
		}
	}

	return result.Err
}

// PromptCmd prints the assembled prompt.
type PromptCmd struct {
	Topic            string `flag:"" help:"Post topic (placeholder kept when empty)"`
	Category         string `flag:"" help:"Post category (placeholder kept when empty)"`
	InstructionsFile string `flag:"" optional:"" type:"existingfile" help:"Instructions template (default: built-in)"`
}

// Run executes the prompt command.
func (c *PromptCmd) Run() error {
	instructions := content.DefaultInstructions
	if c.InstructionsFile != "" {
		data, err := os.ReadFile(c.InstructionsFile)
		if err != nil {
			return fmt.Errorf("failed to read instructions: %w", err)
		}
		instructions = string(data)
	}

	fmt.Println(content.BuildPrompt(instructions, c.Topic, c.Category))

	return nil
}

// CatalogCmd groups catalog browsing subcommands.
type CatalogCmd struct {
	List CatalogListCmd `cmd:"" help:"List generated posts"`
	Show CatalogShowCmd `cmd:"" help:"Print a published post"`
}

// CatalogListCmd lists catalog records from the local mirror.
type CatalogListCmd struct {
	Credentials
}

// Run executes the catalog list command.
func (c *CatalogListCmd) Run() error {
	a, err := newApp(c.Credentials, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // logged in Close

	records := a.session.Records()
	if len(records) == 0 {
		fmt.Println("생성된 블로그가 없습니다.")
		return nil
	}

	for _, rec := range records {
		printRecord(rec)
	}

	return nil
}

// CatalogShowCmd prints one published post.
type CatalogShowCmd struct {
	Credentials

	Filename string `arg:"" help:"Post filename, e.g. 2024-03-14-example-topic.md"`
}

// Run executes the catalog show command.
func (c *CatalogShowCmd) Run() error {
	a, err := newApp(c.Credentials, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // logged in Close

	if rec, ok := a.session.Find(c.Filename); ok {
		printRecord(rec)
		fmt.Println()
	}

	body, _ := a.session.View(context.Background(), c.Filename)
	fmt.Println(body)

	return nil
}

func printRecord(rec catalog.Record) {
	fmt.Printf("%s\n  카테고리: %s\n  태그: %s\n  생성일: %s\n", rec.Topic, rec.Category, rec.Tags, rec.CreatedAt)
	fmt.Printf("  파일: %s\n", rec.Filename)
}

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey    SetKeyCmd    `cmd:"" help:"Store an API key in system keychain"`
	DeleteKey DeleteKeyCmd `cmd:"" name:"delete-key" help:"Remove an API key from system keychain"`
	ListKeys  ListKeysCmd  `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Service string `arg:"" enum:"anthropic,openai,github" help:"Service name (anthropic, openai or github)"`
	Secret  string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Set(apiKey, c.Secret); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", c.Service)

	return nil
}

// DeleteKeyCmd removes an API key from the system keychain.
type DeleteKeyCmd struct {
	Service string `arg:"" enum:"anthropic,openai,github" help:"Service name (anthropic, openai or github)"`
}

// Run executes the delete-key command.
func (c *DeleteKeyCmd) Run() error {
	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Delete(apiKey); err != nil {
		return err
	}

	fmt.Printf("%s API key removed from keychain\n", c.Service)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	allSet := true

	for _, apiKey := range keyring.AllAPIKeys() {
		switch {
		case os.Getenv(apiKey.EnvVar()) != "":
			fmt.Printf("%s: configured (%s)\n", apiKey.DisplayName(), apiKey.EnvVar())
		case keyring.IsSet(apiKey):
			fmt.Printf("%s: configured\n", apiKey.DisplayName())
		default:
			fmt.Printf("%s: not set\n", apiKey.DisplayName())
			allSet = false
		}
	}

	if !allSet {
		fmt.Println("\nRun 'postauto config set-key <service> <key>' to configure.")
	}

	return nil
}

func main() {
	// Text logger until a command sets up its own
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("postauto"),
		kong.Description("Generate marketing blog posts and publish them to a GitHub repository."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
