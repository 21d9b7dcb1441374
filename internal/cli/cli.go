// Package cli implements zmask's command-line subcommands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/zarlcorp/zmask/internal/batch"
	"github.com/zarlcorp/zmask/internal/config"
	"github.com/zarlcorp/zmask/internal/identity"
	"github.com/zarlcorp/zmask/internal/mask"
	"github.com/zarlcorp/zmask/internal/store"
	"github.com/zarlcorp/zmask/internal/tabular"
	"golang.org/x/term"
)

// stdio marks an input or output path that means stdin or stdout.
const stdio = "-"

// DataDir returns the default data directory for zmask.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zmask"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zmask"
	}
	return home + "/.local/share/zmask"
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) ([]byte, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return b, nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) ([]byte, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return nil, err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return nil, err
	}
	if string(pass) != string(confirm) {
		return nil, errors.New("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the vault has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// OpenStore prompts for a password and opens the fixture vault.
func OpenStore(dir string) (*store.Vault, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return nil, errors.New("vault needs an interactive terminal for the password")
	}

	var pass []byte
	var err error
	if IsFirstRun(dir) {
		pass, err = ReadNewPassword(os.Stderr)
	} else {
		pass, err = ReadPassword("master password: ", os.Stderr)
	}
	if err != nil {
		return nil, err
	}

	return store.Open(dir, pass)
}

// LoadConfig resolves settings from the file named by --config (or the
// default path), then the environment.
func LoadConfig(args []string) (config.Config, error) {
	path, ok := flagValue(args, "--config")
	if !ok {
		path = config.Path()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// SetupLogging installs a text handler on w at the configured level.
func SetupLogging(cfg config.Config, w io.Writer) *slog.Logger {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(l)
	return l
}

// CmdGenerate writes a batch of synthetic records.
func CmdGenerate(cfg config.Config, args []string, w io.Writer) error {
	if v, ok := flagValue(args, "-n", "--count"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &identity.ValidationError{Field: "count", Value: v, Reason: "not an integer"}
		}
		cfg.Count = n
	}
	if err := applySeed(&cfg, args); err != nil {
		return err
	}
	hint, err := genderFlag(args)
	if err != nil {
		return err
	}

	o, err := orchestrator(cfg)
	if err != nil {
		return err
	}
	recs, err := o.GenerateWithGender(cfg.Count, hint)
	if err != nil {
		return err
	}

	out, _ := flagValue(args, "-o", "--output")
	if err := emit(cfg, args, out, cfg.GeneratedOutput, w, recs); err != nil {
		return err
	}
	slog.Info("generated records", "count", len(recs))

	if hasFlag(args, "--save") {
		return saveBatch(store.Manifest{Kind: store.KindGenerated, Seed: cfg.Seed}, recs)
	}
	return nil
}

// CmdMask reads demographic rows and writes their masked replacements.
func CmdMask(cfg config.Config, args []string, w io.Writer) error {
	if v, ok := flagValue(args, "-d", "--shift"); ok {
		days, err := mask.ParseShift(v)
		if err != nil {
			return err
		}
		cfg.ShiftDays = days
	}
	if err := applySeed(&cfg, args); err != nil {
		return err
	}

	in, ok := flagValue(args, "-i", "--input")
	if !ok {
		in = cfg.Input
	}
	rows, err := readInput(in)
	if err != nil {
		return err
	}

	var maskOpts []mask.Option
	if hasFlag(args, "--sparse") {
		maskOpts = append(maskOpts, mask.WithSparseOutput())
	}
	o, err := orchestrator(cfg, batch.WithMaskOptions(maskOpts...))
	if err != nil {
		return err
	}
	results, err := o.Mask(rows, cfg.ShiftDays)
	if err != nil {
		return err
	}

	recs := make([]identity.Record, len(results))
	degraded := 0
	for i, r := range results {
		recs[i] = r.Record
		if r.Degraded() {
			degraded++
		}
	}

	out, _ := flagValue(args, "-o", "--output")
	if err := emit(cfg, args, out, cfg.MaskedOutput, w, recs); err != nil {
		return err
	}
	slog.Info("masked records", "count", len(recs), "degraded", degraded, "shift_days", cfg.ShiftDays)

	if hasFlag(args, "--save") {
		return saveBatch(store.Manifest{Kind: store.KindMasked, Seed: cfg.Seed, ShiftDays: cfg.ShiftDays}, recs)
	}
	return nil
}

// CmdIdentity prints a single synthetic identity.
func CmdIdentity(cfg config.Config, args []string, w io.Writer) error {
	if err := applySeed(&cfg, args); err != nil {
		return err
	}
	hint, err := genderFlag(args)
	if err != nil {
		return err
	}

	g, err := generator(cfg)
	if err != nil {
		return err
	}
	rec := g.Compose(hint)

	if hasFlag(args, "--json") {
		if err := tabular.WriteJSON(w, rec); err != nil {
			return err
		}
	} else {
		printRecord(w, rec, cfg.DateLayout)
	}

	if hasFlag(args, "--save") {
		v, err := OpenStore(DataDir())
		if err != nil {
			return err
		}
		defer v.Close()
		if err := v.Save(store.KindGenerated, rec); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "saved")
	}
	return nil
}

// CmdList lists saved records.
func CmdList(args []string, w io.Writer) error {
	v, err := OpenStore(DataDir())
	if err != nil {
		return err
	}
	defer v.Close()

	es, err := v.Entries()
	if err != nil {
		return err
	}
	return printEntries(w, es, hasFlag(args, "--json"))
}

// CmdForget deletes a saved record by ID.
func CmdForget(id string, w io.Writer) error {
	v, err := OpenStore(DataDir())
	if err != nil {
		return err
	}
	defer v.Close()

	if err := v.Delete(id); err != nil {
		return fmt.Errorf("forget %s: %w", id, err)
	}
	fmt.Fprintf(w, "deleted %s\n", id)
	return nil
}

// CmdConfig prints the resolved settings as YAML.
func CmdConfig(cfg config.Config, w io.Writer) error {
	b, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func generator(cfg config.Config) (*identity.Generator, error) {
	src, err := cfg.Source()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.GeneratorOptions()
	if err != nil {
		return nil, err
	}
	return identity.New(src, opts...), nil
}

func orchestrator(cfg config.Config, extra ...batch.Option) (*batch.Orchestrator, error) {
	g, err := generator(cfg)
	if err != nil {
		return nil, err
	}
	opts := append(cfg.BatchOptions(), batch.WithLogger(slog.Default()))
	return batch.New(g, append(opts, extra...)...), nil
}

func applySeed(cfg *config.Config, args []string) error {
	v, ok := flagValue(args, "--seed")
	if !ok {
		return nil
	}
	seed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return &identity.ValidationError{Field: "seed", Value: v, Reason: "not an unsigned integer"}
	}
	cfg.Seed = &seed
	return nil
}

func genderFlag(args []string) (identity.Gender, error) {
	v, ok := flagValue(args, "--gender")
	if !ok {
		return "", nil
	}
	g, ok := identity.ParseGender(v)
	if !ok {
		return "", &identity.ValidationError{Field: "gender", Value: v, Reason: "want male, female or unspecified"}
	}
	return g, nil
}

func readInput(path string) ([]identity.InputRecord, error) {
	if path == stdio {
		return tabular.ReadAll(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	rows, err := tabular.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// createFile opens output files; tests replace it.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// emit writes recs as JSON or CSV. With --json and no explicit output the
// records go to w; otherwise CSV goes to the explicit or configured file.
func emit(cfg config.Config, args []string, out, fallback string, w io.Writer, recs []identity.Record) error {
	asJSON := hasFlag(args, "--json")
	if out == "" {
		out = fallback
		if asJSON {
			out = stdio
		}
	}

	write := func(dst io.Writer) error {
		if asJSON {
			return tabular.WriteJSON(dst, recs)
		}
		if err := tabular.NewWriter(dst, cfg.DateLayout).Write(recs...); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		return nil
	}

	if out == stdio {
		return write(w)
	}

	f, err := createFile(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	// a failed close can lose buffered rows
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	if !asJSON {
		fmt.Fprintf(w, "wrote %d records to %s\n", len(recs), out)
	}
	return nil
}

func saveBatch(m store.Manifest, recs []identity.Record) error {
	v, err := OpenStore(DataDir())
	if err != nil {
		return err
	}
	defer v.Close()

	m, err = v.SaveBatch(m, recs)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved batch %s (%d records)\n", m.ID, len(m.RecordIDs))
	return nil
}

func printRecord(w io.Writer, rec identity.Record, layout string) {
	fmt.Fprintf(w, "  id:       %s\n", rec.ID)
	fmt.Fprintf(w, "  name:     %s %s\n", rec.FirstName, rec.LastName)
	fmt.Fprintf(w, "  gender:   %s\n", rec.Gender)
	fmt.Fprintf(w, "  dob:      %s\n", rec.BirthDate.Format(layout))
	fmt.Fprintf(w, "  ssn:      %s\n", rec.SSN)
	fmt.Fprintf(w, "  card:     %s\n", rec.CreditCard)
	fmt.Fprintf(w, "  address:  %s, %s, %s %s\n", rec.Address, rec.City, rec.State, rec.PostalCode)
	fmt.Fprintf(w, "  email:    %s\n", rec.Email)
	fmt.Fprintf(w, "  phone:    %s\n", rec.Phone)
}

func printEntries(w io.Writer, es []store.Entry, asJSON bool) error {
	if len(es) == 0 {
		fmt.Fprintln(w, "no saved records")
		return nil
	}
	if asJSON {
		return tabular.WriteJSON(w, es)
	}
	for _, e := range es {
		fmt.Fprintf(w, "  %-36s %-9s %-24s %s\n",
			e.Record.ID,
			e.Kind,
			e.Record.FirstName+" "+e.Record.LastName,
			e.SavedAt.Format("2006-01-02"),
		)
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// flagValue returns the value following any of names, or given inline as
// name=value.
func flagValue(args []string, names ...string) (string, bool) {
	for i, a := range args {
		for _, n := range names {
			if a == n && i+1 < len(args) {
				return args[i+1], true
			}
			if v, ok := strings.CutPrefix(a, n+"="); ok {
				return v, true
			}
		}
	}
	return "", false
}
