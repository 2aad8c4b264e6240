// Package assemble builds the final rendering context for a template from
// its declared defaults, the user configuration, caller overrides, a
// replay snapshot and the user's answers.
package assemble

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/christokur/cruft/internal/config"
	"github.com/christokur/cruft/internal/cookiecutter"
	"github.com/christokur/cruft/internal/errs"
	"github.com/christokur/cruft/internal/logging"
	"github.com/christokur/cruft/internal/replay"
)

// TemplateKey is the engine variable recording the template reference.
const TemplateKey = "_template"

// Options are the inputs of a single assembly.
type Options struct {
	// TemplateRef is recorded under TemplateKey.
	TemplateRef string
	// TemplateDir holds cookiecutter.json and the template root directory.
	TemplateDir string

	ConfigFile    string
	DefaultConfig bool

	// ExtraContext overrides template defaults. ExtraContextFile, when set,
	// replaces it entirely.
	ExtraContext     *cookiecutter.Context
	ExtraContextFile string

	NoInput bool

	// ReplayFile is a path, or a name inside the configured replay
	// directory. The final context is written back to it.
	ReplayFile string
}

// Assembler merges context sources. The zero value never prompts and
// reads configuration from the real home directory.
type Assembler struct {
	Prompter cookiecutter.Prompter
	Env      config.Env
	// Home overrides the directory searched for the user config.
	Home   string
	Logger *slog.Logger
}

// Assemble returns the rendering context for opts. It either succeeds
// completely or returns one of the errs kinds.
func (a *Assembler) Assemble(opts Options) (*cookiecutter.Context, error) {
	log := logging.OrDiscard(a.Logger)

	if _, err := cookiecutter.FindTemplateRoot(opts.TemplateDir); err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.LoadOptions{
		Path:       opts.ConfigFile,
		UseDefault: opts.DefaultConfig,
		Env:        a.Env,
		Home:       a.Home,
	})
	if err != nil {
		return nil, err
	}

	extra := opts.ExtraContext.Clone()
	if opts.ExtraContextFile != "" {
		extra, err = cookiecutter.LoadExtraContextFile(opts.ExtraContextFile)
		if err != nil {
			return nil, err
		}
	}

	var replayPath string
	if opts.ReplayFile != "" {
		replayPath, err = locateReplay(opts.ReplayFile, cfg.ReplayDir)
		if err != nil {
			return nil, err
		}
		log.Debug("using replay file", "path", replayPath)
		saved, err := replay.LoadFile(replayPath)
		if err != nil {
			return nil, &errs.ReplayError{
				Path:    replayPath,
				Details: fmt.Sprintf("Failed to load the replay file. %s", err),
				Err:     err,
			}
		}
		fillMissing(extra, saved)
	}

	engineVars, userVars := extra.Split()

	base, err := cookiecutter.LoadTemplateContext(opts.TemplateDir)
	if err != nil {
		return nil, err
	}
	if err := cookiecutter.ApplyDeclaredOverwrites(base, cookiecutter.ContextFromMap(cfg.DefaultContext)); err != nil {
		return nil, err
	}
	if err := cookiecutter.ApplyOverwrites(base, userVars); err != nil {
		return nil, err
	}

	prompter := a.Prompter
	if prompter == nil {
		prompter = cookiecutter.PassThrough{}
	}
	result, err := prompter.Prompt(base, opts.NoInput)
	if err != nil {
		return nil, &errs.IOError{Op: "prompting for template variables", Err: err}
	}
	result = result.Clone()
	result.Set(TemplateKey, opts.TemplateRef)
	result.Update(engineVars)
	log.Debug("assembled context", "variables", result.Len())

	if replayPath != "" {
		if err := replay.SaveFile(replayPath, result); err != nil {
			return nil, &errs.ReplayError{
				Path:    replayPath,
				Details: fmt.Sprintf("Failed to save the replay file. %s", err),
				Err:     err,
			}
		}
	}
	return result, nil
}

// locateReplay resolves file as given, then inside replayDir, where a
// bare replay name gets the .json suffix.
func locateReplay(file, replayDir string) (string, error) {
	if _, err := os.Stat(file); err == nil {
		return file, nil
	}
	p := filepath.Join(replayDir, file)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	named := replay.Store{Dir: replayDir}.Path(file)
	if _, err := os.Stat(named); err == nil {
		return named, nil
	}
	return "", &errs.ReplayError{Path: p, Details: "No replay file found."}
}

// fillMissing copies into dst every variable of src that dst lacks.
func fillMissing(dst, src *cookiecutter.Context) {
	for _, k := range src.Keys() {
		if dst.Has(k) {
			continue
		}
		v, _ := src.Get(k)
		dst.Set(k, v)
	}
}
