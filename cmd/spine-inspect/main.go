// spine-inspect deserializes a JSON:API document and prints the resulting
// object graph. It is a debugging aid for inspecting server responses
// offline.
//
// Resource types are declared on the command line:
//
//	spine-inspect response.json \
//	    --type articles:title,body \
//	    --to-one articles.author=people \
//	    --to-many articles.tags=tags \
//	    --type people:name
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/smatte/Spine/jsonapi"
)

var (
	typeFlags   []string
	toOneFlags  []string
	toManyFlags []string
	dump        bool
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "spine-inspect [file]",
	Short: "Inspect a JSON:API document",
	Long: `spine-inspect deserializes a JSON:API response document and prints the
resulting resources, relationships, errors and links. Reads from stdin
when no file is given or the file is "-".`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringArrayVar(&typeFlags, "type", nil,
		"register a resource type: name:attr1,attr2 (repeatable)")
	rootCmd.Flags().StringArrayVar(&toOneFlags, "to-one", nil,
		"declare a to-one relationship: type.field=linkedType (repeatable)")
	rootCmd.Flags().StringArrayVar(&toManyFlags, "to-many", nil,
		"declare a to-many relationship: type.field=linkedType (repeatable)")
	rootCmd.Flags().BoolVar(&dump, "dump", false, "deep-dump the full document")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log deserialization diagnostics")
}

func run(cmd *cobra.Command, args []string) error {
	body, err := readInput(args)
	if err != nil {
		return err
	}

	registry, err := buildRegistry()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	doc, err := jsonapi.Deserialize(context.Background(), body,
		jsonapi.OptFactory(registry),
		jsonapi.OptLogger(logger))
	if err != nil {
		return fmt.Errorf("%s: %w", jsonapi.Code(err), err)
	}

	if dump {
		spew.Fdump(cmd.OutOrStdout(), doc)
		return nil
	}
	printSummary(cmd.OutOrStdout(), doc)
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func buildRegistry() (*jsonapi.Registry, error) {
	registry := jsonapi.NewRegistry()
	fields := make(map[string][]jsonapi.Field)

	for _, spec := range typeFlags {
		name, attrs, ok := strings.Cut(spec, ":")
		if !ok {
			fields[spec] = nil
			continue
		}
		for _, attr := range strings.Split(attrs, ",") {
			if attr == "" {
				continue
			}
			fields[name] = append(fields[name], jsonapi.Attribute{FieldName: attr})
		}
	}
	for _, spec := range toOneFlags {
		owner, field, linked, err := parseRelationship(spec)
		if err != nil {
			return nil, err
		}
		fields[owner] = append(fields[owner],
			jsonapi.ToOneRelationship{FieldName: field, LinkedType: linked})
	}
	for _, spec := range toManyFlags {
		owner, field, linked, err := parseRelationship(spec)
		if err != nil {
			return nil, err
		}
		fields[owner] = append(fields[owner],
			jsonapi.ToManyRelationship{FieldName: field, LinkedType: linked})
	}

	for name, fs := range fields {
		registry.RegisterType(name, fs...)
	}
	return registry, nil
}

// parseRelationship splits "type.field=linkedType".
func parseRelationship(spec string) (owner, field, linked string, err error) {
	lhs, linked, ok := strings.Cut(spec, "=")
	if !ok {
		return "", "", "", fmt.Errorf("invalid relationship %q, want type.field=linkedType", spec)
	}
	owner, field, ok = strings.Cut(lhs, ".")
	if !ok {
		return "", "", "", fmt.Errorf("invalid relationship %q, want type.field=linkedType", spec)
	}
	return owner, field, linked, nil
}

func printSummary(w io.Writer, doc *jsonapi.Document) {
	if doc.IsErrorDocument() {
		fmt.Fprintf(w, "errors (%d):\n", len(doc.Errors))
		for _, e := range doc.Errors {
			fmt.Fprintf(w, "  - %s", e.Error())
			if e.Pointer != "" {
				fmt.Fprintf(w, " at %s", e.Pointer)
			}
			fmt.Fprintln(w)
		}
		return
	}

	fmt.Fprintf(w, "primary (%d):\n", len(doc.Data))
	for _, res := range doc.Data {
		printResource(w, res)
	}
	if len(doc.Included) > 0 {
		fmt.Fprintf(w, "included (%d):\n", len(doc.Included))
		for _, res := range doc.Included {
			printResource(w, res)
		}
	}
	for name, u := range doc.Links {
		fmt.Fprintf(w, "link %s: %s\n", name, u)
	}
}

func printResource(w io.Writer, res *jsonapi.Resource) {
	fmt.Fprintf(w, "  - %s\n", res)
	for _, f := range res.Fields {
		switch f.Kind() {
		case jsonapi.KindAttribute:
			if v, ok := res.Attribute(f.Name()); ok {
				fmt.Fprintf(w, "      %s = %v\n", f.Name(), v)
			}
		case jsonapi.KindToOne:
			if linked, ok := res.ToOne(f.Name()); ok {
				fmt.Fprintf(w, "      %s -> %s (loaded=%v)\n", f.Name(), linked, linked.IsLoaded)
			}
		case jsonapi.KindToMany:
			coll, ok := res.ToMany(f.Name())
			if !ok {
				continue
			}
			fmt.Fprintf(w, "      %s -> %d of %d resolved (loaded=%v)\n",
				f.Name(), len(coll.Resources), len(coll.Linkage), coll.IsLoaded)
		}
	}
}
