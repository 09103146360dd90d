package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/middlemost/podgen"
	"github.com/middlemost/podgen/bolt"
	"github.com/middlemost/podgen/elevenlabs"
	"github.com/middlemost/podgen/extract"
	"github.com/middlemost/podgen/gemini"
	"github.com/middlemost/podgen/http"
	"github.com/middlemost/podgen/local"
	"github.com/middlemost/podgen/ollama"
	"github.com/middlemost/podgen/openai"
	"github.com/middlemost/podgen/watcher"
)

func main() {
	m := NewMain()

	// Parse command line flags.
	if err := m.ParseFlags(os.Args[1:]); err == flag.ErrHelp {
		os.Exit(1)
	} else if err != nil {
		fmt.Fprintln(m.Stderr, err)
		os.Exit(1)
	}

	// Load configuration.
	if err := m.LoadConfig(); err != nil {
		fmt.Fprintln(m.Stderr, err)
		os.Exit(1)
	}

	// Execute program.
	if err := m.Run(); err != nil {
		fmt.Fprintln(m.Stderr, err)
		os.Exit(1)
	}

	// Shutdown on SIGINT (CTRL-C).
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	fmt.Fprintln(m.Stdout, "received interrupt, shutting down...")
	m.Close()
}

// Main represents the main program execution.
type Main struct {
	ConfigPath string
	Config     Config

	// Input/output streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	closeFn func() error
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{
		ConfigPath: DefaultConfigPath,
		Config:     DefaultConfig(),

		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,

		closeFn: func() error { return nil },
	}
}

// Close cleans up the program.
func (m *Main) Close() error { return m.closeFn() }

// Usage returns the usage message.
func (m *Main) Usage() string {
	return strings.TrimSpace(`
usage: podgen [flags]

The daemon process for converting uploaded documents into narrated podcasts.

The following flags are available:

	-config PATH
		Specifies the configuration file to read.
		Defaults to ~/.podgen/config

`)
}

// ParseFlags parses the command line flags.
func (m *Main) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("podgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&m.ConfigPath, "config", "", "config file")
	return fs.Parse(args)
}

// LoadConfig parses the configuration file.
func (m *Main) LoadConfig() error {
	// Default configuration path if not specified.
	path := m.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	// Interpolate path.
	if err := InterpolatePaths(&path); err != nil {
		return err
	}

	// Read configuration file.
	if _, err := toml.DecodeFile(path, &m.Config); os.IsNotExist(err) {
		if m.ConfigPath != "" {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}

// Run executes the program.
func (m *Main) Run() error {
	ctx := context.Background()

	// Interpolate config paths.
	dbPath := m.Config.Database.Path
	filePath := m.Config.File.Path
	inboxPath := m.Config.Watch.Path
	archivePath := m.Config.Watch.ArchivePath
	if err := InterpolatePaths(&dbPath, &filePath, &inboxPath, &archivePath); err != nil {
		return err
	}

	// Initialize artifact storage.
	fileService := local.NewFileService()
	fileService.Path = filePath
	fmt.Fprintf(m.Stdout, "file storage: path=%s\n", m.Config.File.Path)

	// Initialize extraction.
	textExtractor := extract.NewTextExtractor()

	// Initialize summarization backend.
	summaryService, err := m.summaryService()
	if err != nil {
		return err
	}

	// Initialize script generation backend.
	scriptService, closeScripts, err := m.scriptService(ctx)
	if err != nil {
		return err
	}

	// Initialize speech synthesis.
	speechService := elevenlabs.NewSpeechService()
	speechService.APIKey = m.Config.ElevenLabs.APIKey
	if m.Config.ElevenLabs.Model != "" {
		speechService.Model = m.Config.ElevenLabs.Model
	}
	speechService.LogOutput = m.Stdout

	// Open database.
	db := bolt.NewDB()
	db.Path = dbPath
	if err := db.Open(); err != nil {
		return err
	}
	fmt.Fprintf(m.Stdout, "database initialized: path=%s\n", m.Config.Database.Path)

	// Instantiate bolt services.
	podcastService := bolt.NewPodcastService(db)

	// Assemble pipeline.
	pipeline := podgen.NewPipeline()
	pipeline.TextExtractor = textExtractor
	pipeline.SummaryService = summaryService
	pipeline.ScriptService = scriptService
	pipeline.SpeechService = speechService
	pipeline.FileService = fileService
	pipeline.PodcastService = podcastService
	pipeline.Voices = m.voices()
	pipeline.LogOutput = m.Stdout

	// Start inbox watcher, if configured.
	var watchService *watcher.Service
	if inboxPath != "" {
		watchService = watcher.NewService()
		watchService.Path = inboxPath
		watchService.ArchivePath = archivePath
		if m.Config.Watch.MaxParallel > 0 {
			watchService.MaxParallel = m.Config.Watch.MaxParallel
		}
		watchService.Runner = pipeline
		watchService.LogOutput = m.Stdout

		if err := watchService.Open(); err != nil {
			return fmt.Errorf("error: open watcher: %s", err)
		}
		fmt.Fprintf(m.Stdout, "watching inbox: path=%s\n", m.Config.Watch.Path)
	}

	// Initialize HTTP server.
	httpServer := http.NewServer()
	httpServer.Addr = m.Config.HTTP.Addr
	httpServer.Host = m.Config.HTTP.Host
	httpServer.Autocert = m.Config.HTTP.Autocert
	if len(m.Config.HTTP.Origins) > 0 {
		httpServer.Origins = m.Config.HTTP.Origins
	}
	httpServer.LogOutput = m.Stdout

	httpServer.Pipeline = pipeline
	httpServer.PodcastService = podcastService
	httpServer.FileService = fileService

	// Open HTTP server.
	if err := httpServer.Open(); err != nil {
		return err
	}
	serverURL := httpServer.URL()
	fmt.Fprintf(m.Stdout, "http listening: %s\n", serverURL.String())

	// Assign close function.
	m.closeFn = func() error {
		httpServer.Close()
		if watchService != nil {
			watchService.Close()
		}
		closeScripts()
		db.Close()
		return nil
	}

	return nil
}

// summaryService builds the configured summarization backend.
func (m *Main) summaryService() (podgen.SummaryService, error) {
	switch m.Config.Summary.Backend {
	case "", "ollama":
		s, err := ollama.NewSummaryService(m.Config.Ollama.Host)
		if err != nil {
			return nil, err
		}
		if m.Config.Ollama.Model != "" {
			s.Model = m.Config.Ollama.Model
		}
		fmt.Fprintf(m.Stdout, "summarization: backend=ollama model=%s\n", s.Model)
		return s, nil

	case "openai":
		s := openai.NewService(m.Config.OpenAI.APIKey, m.Config.OpenAI.BaseURL)
		if m.Config.OpenAI.Model != "" {
			s.Model = m.Config.OpenAI.Model
		}
		fmt.Fprintf(m.Stdout, "summarization: backend=openai model=%s\n", s.Model)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown summary backend: %q", m.Config.Summary.Backend)
	}
}

// scriptService builds the configured script generation backend.
func (m *Main) scriptService(ctx context.Context) (podgen.ScriptService, func() error, error) {
	switch m.Config.Script.Backend {
	case "", "gemini":
		if m.Config.Gemini.APIKey == "" {
			return nil, nil, errors.New("gemini api key required")
		}
		s, err := gemini.NewScriptService(ctx, m.Config.Gemini.APIKey)
		if err != nil {
			return nil, nil, err
		}
		if m.Config.Gemini.Model != "" {
			s.Model = m.Config.Gemini.Model
		}
		fmt.Fprintf(m.Stdout, "script generation: backend=gemini model=%s\n", s.Model)
		return s, s.Close, nil

	case "openai":
		s := openai.NewService(m.Config.OpenAI.APIKey, m.Config.OpenAI.BaseURL)
		if m.Config.OpenAI.Model != "" {
			s.Model = m.Config.OpenAI.Model
		}
		fmt.Fprintf(m.Stdout, "script generation: backend=openai model=%s\n", s.Model)
		return s, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown script backend: %q", m.Config.Script.Backend)
	}
}

// voices builds the speaker-to-voice mapping, uppercasing configured names.
func (m *Main) voices() map[string]string {
	if len(m.Config.Voices) == 0 {
		return podgen.DefaultVoices
	}
	voices := make(map[string]string, len(m.Config.Voices))
	for name, id := range m.Config.Voices {
		voices[strings.ToUpper(name)] = id
	}
	return voices
}

// DefaultConfigPath is the default configuration path.
const DefaultConfigPath = "~/.podgen/config"

// Config represents a configuration file.
type Config struct {
	Database struct {
		Path string `toml:"path"`
	} `toml:"database"`

	File struct {
		Path string `toml:"path"`
	} `toml:"file"`

	HTTP struct {
		Addr     string   `toml:"addr"`
		Host     string   `toml:"host"`
		Autocert bool     `toml:"autocert"`
		Origins  []string `toml:"origins"`
	} `toml:"http"`

	Watch struct {
		Path        string `toml:"path"`
		ArchivePath string `toml:"archive-path"`
		MaxParallel int    `toml:"max-parallel"`
	} `toml:"watch"`

	Summary struct {
		Backend string `toml:"backend"`
	} `toml:"summary"`

	Script struct {
		Backend string `toml:"backend"`
	} `toml:"script"`

	Ollama struct {
		Host  string `toml:"host"`
		Model string `toml:"model"`
	} `toml:"ollama"`

	OpenAI struct {
		APIKey  string `toml:"api-key"`
		BaseURL string `toml:"base-url"`
		Model   string `toml:"model"`
	} `toml:"openai"`

	Gemini struct {
		APIKey string `toml:"api-key"`
		Model  string `toml:"model"`
	} `toml:"gemini"`

	ElevenLabs struct {
		APIKey string `toml:"api-key"`
		Model  string `toml:"model"`
	} `toml:"elevenlabs"`

	Voices map[string]string `toml:"voices"`
}

// DefaultConfig returns a configuration with default settings.
func DefaultConfig() Config {
	var c Config
	c.Database.Path = "~/.podgen/db"
	c.File.Path = "~/.podgen/file"
	c.Watch.ArchivePath = "~/.podgen/archive"
	c.HTTP.Addr = ":8000"
	return c
}

// InterpolatePaths replaces the tilde prefix with the user's home directory.
func InterpolatePaths(a ...*string) error {
	for _, s := range a {
		if !strings.HasPrefix(*s, "~/") {
			continue
		}

		u, err := user.Current()
		if err != nil {
			return err
		} else if u.HomeDir == "" {
			return errors.New("home directory not found")
		}
		*s = filepath.Join(u.HomeDir, strings.TrimPrefix(*s, "~/"))
	}
	return nil
}
