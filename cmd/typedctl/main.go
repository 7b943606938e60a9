// Command typedctl is a small CLI for working with a typed content store
// directly, without going through the HTTP server:
//
//	typedctl put <file>            store a file and print its identifier
//	typedctl get <identifier>      write the stored payload to stdout
//	typedctl inspect <identifier>  print the typed view and annotations
//
// Backend selection mirrors typed-content-server: STORE_URL picks the
// block store and DATABASE_URL the annotation database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/candell/typed-content/pkg/typedcontent"
	"github.com/candell/typed-content/pkg/typedcontent/annotation"
	"github.com/candell/typed-content/pkg/typedcontent/config"
)

// Config holds the CLI environment configuration
type Config struct {
	StoreURL    string `env:"STORE_URL" env-default:"file://./data/blocks"`
	DatabaseURL string `env:"DATABASE_URL" env-default:"memory"`
	DBSchema    string `env:"DB_SCHEMA" env-default:""`
	Verbose     bool   `env:"TYPEDCTL_VERBOSE" env-default:"false"`
}

func main() {
	if len(os.Args) != 3 {
		usage()
		os.Exit(2)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read environment", "err", err)
		os.Exit(1)
	}

	serverConfig, err := config.Load(
		config.WithStoreURL(cfg.StoreURL),
		config.WithDatabaseURL(cfg.DatabaseURL),
		config.WithDatabaseSchema(cfg.DBSchema),
		config.WithEventLogging(cfg.Verbose),
	)
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	gateway, err := serverConfig.BuildGateway()
	if err != nil {
		slog.Error("Failed to build gateway", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "put":
		err = runPut(ctx, gateway, os.Args[2])
	case "get":
		err = runGet(ctx, gateway, os.Args[2])
	case "inspect":
		err = runInspect(ctx, serverConfig, gateway, os.Args[2])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("Command failed", "command", os.Args[1], "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  typedctl put <file>            store a file and print its identifier")
	fmt.Fprintln(os.Stderr, "  typedctl get <identifier>      write the stored payload to stdout")
	fmt.Fprintln(os.Stderr, "  typedctl inspect <identifier>  print the typed view and annotations")
}

func runPut(ctx context.Context, gateway typedcontent.Gateway, path string) error {
	id, err := gateway.StoreFile(ctx, path)
	if err != nil {
		return err
	}
	if id.IsZero() {
		fmt.Fprintln(os.Stderr, "skipped: neither a decodable image nor valid UTF-8 text")
		return nil
	}
	fmt.Println(id)
	return nil
}

func runGet(ctx context.Context, gateway typedcontent.Gateway, identifier string) error {
	item, err := gateway.Load(ctx, identifier)
	if err != nil {
		return err
	}

	switch v := item.(type) {
	case typedcontent.ImageItem:
		_, err = os.Stdout.Write(v.Content.Buffer)
	case typedcontent.TextItem:
		_, err = fmt.Print(v.Content.Text)
	default:
		err = fmt.Errorf("unexpected content kind %q", item.Kind())
	}
	return err
}

func runInspect(ctx context.Context, serverConfig *config.ServerConfig, gateway typedcontent.Gateway, identifier string) error {
	item, err := gateway.Load(ctx, identifier)
	if err != nil {
		return err
	}

	summary := map[string]interface{}{
		"identifier": identifier,
		"kind":       item.Kind(),
	}
	switch v := item.(type) {
	case typedcontent.ImageItem:
		summary["metadata"] = v.Metadata
	case typedcontent.TextItem:
		summary["metadata"] = v.Metadata
	}

	repo, err := serverConfig.BuildAnnotationRepository()
	if err != nil {
		return err
	}
	annotations, err := annotation.NewService(repo)
	if err != nil {
		return err
	}
	records, err := annotations.List(ctx, identifier)
	if err != nil {
		return err
	}
	summary["annotations"] = records

	// Records come back oldest-first; show the newest one's chain of
	// values from root to leaf.
	if len(records) > 0 {
		leaf, err := annotation.BuildTree(records, records[len(records)-1].ID)
		if err != nil {
			return err
		}
		summary["newest_chain"] = chainValues(leaf)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// chainValues flattens a metadata chain into root-first values.
func chainValues(leaf *typedcontent.MetadataItem) []string {
	var values []string
	for node := leaf; node != nil; node = node.Parent {
		values = append(values, node.Value)
	}
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
	return values
}
