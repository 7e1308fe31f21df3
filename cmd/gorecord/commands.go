package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	gorecord "github.com/reoring/gorecord"
	"github.com/reoring/gorecord/dsl"
	"github.com/reoring/gorecord/i18n"
	"github.com/reoring/gorecord/internal/config"
	"github.com/reoring/gorecord/internal/logx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// errNotEqual signals a negative equal verdict (exit status 1).
var errNotEqual = errors.New("records are not equal")

func exitCode(err error) int {
	if errors.Is(err, errNotEqual) {
		return 1
	}
	return 2
}

type app struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "gorecord",
		Short: "Inspect record declarations and construct records",
		Long: `gorecord loads record type declarations (YAML or JSON) and lets you inspect
their keyword schemas, construct records from key=value pairs, and compare them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./gorecord.yaml)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("lang", "en", "message language (en, ja)")

	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		if err := v.BindPFlag("log.level", pf.Lookup("log-level")); err != nil {
			return err
		}
		if err := v.BindPFlag("language", pf.Lookup("lang")); err != nil {
			return err
		}
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		l, err := logx.New(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}
		i18n.SetLanguage(cfg.Language)
		a.cfg, a.log = cfg, l
		return nil
	}

	root.AddCommand(a.fieldsCommand(), a.newCommand(), a.equalCommand())
	return root
}

func (a *app) load(path string) (*gorecord.Registry, error) {
	reg := gorecord.NewRegistry(gorecord.WithLogger(a.log))
	types, err := dsl.LoadFile(reg, path)
	if err != nil {
		return nil, err
	}
	if a.cfg != nil && a.cfg.Unknown == "strip" {
		for _, t := range reg.Types() {
			t.SetUnknownPolicy(gorecord.UnknownStrip)
		}
	}
	a.log.Info("declarations loaded", zap.String("file", path), zap.Int("types", len(types)))
	return reg, nil
}

func (a *app) fieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields FILE",
		Short: "Print the keyword schema of every declared type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.load(args[0])
			if err != nil {
				return err
			}
			printSchemas(cmd.OutOrStdout(), reg.Types())
			return nil
		},
	}
}

func printSchemas(w io.Writer, types []*gorecord.Type) {
	for _, t := range types {
		fmt.Fprint(w, t.Name())
		if b := t.Base(); b != nil {
			fmt.Fprintf(w, " < %s", b.Name())
		}
		fmt.Fprintln(w)
		for _, f := range t.Fields() {
			d, _ := t.Schema().Lookup(f)
			fmt.Fprintf(w, "  %-16s %-9s %s\n", f, d.Kind(), t.Visibility(f))
		}
	}
}

func (a *app) newCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new FILE TYPE [key=value ...]",
		Short: "Construct a record and print its decomposition as JSON",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.load(args[0])
			if err != nil {
				return err
			}
			rec, err := a.construct(reg, args[1], args[2:])
			if err != nil {
				return err
			}
			out := map[string]any{
				"type":       rec.Type().Name(),
				"positional": render(rec.Deconstruct()),
				"keyed":      render(rec.DeconstructKeys(nil)),
				"defaulted":  rec.Presence().Defaulted(rec.Type().Fields()),
				"hash":       fmt.Sprintf("%016x", rec.Hash()),
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func (a *app) equalCommand() *cobra.Command {
	var left, right []string
	cmd := &cobra.Command{
		Use:   "equal FILE TYPE_A TYPE_B",
		Short: "Construct two records and compare them",
		Long: `Constructs TYPE_A from --a pairs and TYPE_B from --b pairs and prints the
lenient and strict verdicts. The exit status follows the configured equality mode.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.load(args[0])
			if err != nil {
				return err
			}
			ra, err := a.construct(reg, args[1], left)
			if err != nil {
				return err
			}
			rb, err := a.construct(reg, args[2], right)
			if err != nil {
				return err
			}
			lenient, strict := ra.Equal(rb), ra.StrictEqual(rb)
			if err := writeJSON(cmd.OutOrStdout(), map[string]any{
				"lenient":     lenient,
				"strict":      strict,
				"same_hash":   ra.Hash() == rb.Hash(),
				"equality":    a.cfg.Equality,
				"left_value":  render(ra.DeconstructKeys(nil)),
				"right_value": render(rb.DeconstructKeys(nil)),
			}); err != nil {
				return err
			}
			verdict := strict
			if a.cfg.Equality == "lenient" {
				verdict = lenient
			}
			if !verdict {
				return errNotEqual
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&left, "a", "a", nil, "key=value pairs for TYPE_A")
	cmd.Flags().StringSliceVarP(&right, "b", "b", nil, "key=value pairs for TYPE_B")
	return cmd
}

func (a *app) construct(reg *gorecord.Registry, typeName string, pairs []string) (*gorecord.Record, error) {
	t, ok := reg.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("type %q is not declared", typeName)
	}
	values, err := parsePairs(pairs)
	if err != nil {
		return nil, err
	}
	rec, err := t.New(values)
	if err != nil {
		if iss, ok := gorecord.AsIssues(err); ok {
			a.log.Debug("construction failed", zap.String("type", typeName), zap.Int("issues", len(iss)))
			return nil, issuesError(iss)
		}
		return nil, err
	}
	return rec, nil
}

// parsePairs reads key=value arguments; values are YAML scalars or flow
// collections, so 3, true, [a, b] and {k: v} keep their types.
func parsePairs(pairs []string) (gorecord.Values, error) {
	out := gorecord.Values{}
	for _, p := range pairs {
		k, raw, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("value of %s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// issuesError lists every issue on its own line.
type issuesError gorecord.Issues

func (e issuesError) Error() string {
	lines := make([]string, 0, len(e))
	for _, it := range e {
		lines = append(lines, fmt.Sprintf("%s: %s", it.Path, it.Message))
	}
	return strings.Join(lines, "\n")
}

// render converts records and containers into JSON-friendly values.
func render(v any) any {
	switch t := v.(type) {
	case *gorecord.Record:
		m := map[string]any{"_type": t.Type().Name()}
		for k, vv := range t.DeconstructKeys(nil) {
			m[k] = render(vv)
		}
		return m
	case *gorecord.List:
		return render(t.Values())
	case *gorecord.Dict:
		return render(t.Map())
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = render(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out[k] = render(t[k])
		}
		return out
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
