package main

import (
	"fmt"
	"os"

	"github.com/fbkclanna/gerritfetch/internal/change"
	"github.com/fbkclanna/gerritfetch/internal/config"
	"github.com/fbkclanna/gerritfetch/internal/git"
	"github.com/fbkclanna/gerritfetch/internal/ui"
	"github.com/fbkclanna/gerritfetch/internal/workspace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDoctorCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [basedir]",
		Short: "Diagnose the environment a fetch would run in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, v, args)
		},
	}
}

func runDoctor(cmd *cobra.Command, v *viper.Viper, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	basedir := "."
	if len(args) > 0 {
		basedir = args[0]
	}

	cl := ui.NewChecklist(cmd.OutOrStdout())
	checkGit(cl)
	if req, ok := checkEnv(cl, os.LookupEnv, cfg.AllowedHosts); ok {
		checkWorkingCopy(cl, basedir, req)
	}
	if err := cl.Flush(); err != nil {
		return err
	}

	if n := cl.Failed(); n > 0 {
		return fmt.Errorf("doctor: %d check(s) failed", n)
	}
	return nil
}

func checkGit(cl *ui.Checklist) {
	gitPath, err := git.LookPath()
	if err != nil {
		cl.Add(ui.Check{Name: "git", Required: true, Detail: "not found on PATH (install it from https://git-scm.com/)"})
		return
	}
	cl.Add(ui.Check{Name: "git", OK: true, Required: true, Detail: gitPath})

	ver, err := git.Version()
	if err != nil {
		cl.Add(ui.Check{Name: "git version", Detail: err.Error()})
		return
	}
	cl.Add(ui.Check{Name: "git version", OK: true, Detail: ver})
}

// checkEnv reports each GERRIT_* variable, the host allow-list and the
// refspec. It returns the request when a run would reach the working copy.
// Unset and empty variables both count as missing, as in change.Read.
func checkEnv(cl *ui.Checklist, lookup change.LookupFunc, allowedHosts []string) (change.Request, bool) {
	var req change.Request
	complete := true
	for _, e := range []struct {
		name string
		dst  *string
	}{
		{change.EnvHost, &req.Host},
		{change.EnvProject, &req.Project},
		{change.EnvRefspec, &req.Refspec},
	} {
		*e.dst, _ = lookup(e.name)
		if *e.dst == "" {
			cl.Add(ui.Check{Name: e.name, Required: true, Detail: "not set"})
			complete = false
			continue
		}
		cl.Add(ui.Check{Name: e.name, OK: true, Required: true, Detail: *e.dst})
	}

	if req.Host != "" {
		allowed := change.IsAllowed(req.Host, allowedHosts)
		detail := fmt.Sprintf("%s in %v", req.Host, allowedHosts)
		if !allowed {
			detail = fmt.Sprintf("%s not in %v", req.Host, allowedHosts)
		}
		cl.Add(ui.Check{Name: "allowed host", OK: allowed, Required: true, Detail: detail})
		complete = complete && allowed
	}
	if req.Refspec != "" {
		if err := change.ValidateRefspec(req.Refspec); err != nil {
			cl.Add(ui.Check{Name: "refspec", Required: true, Detail: err.Error()})
			complete = false
		}
	}
	return req, complete
}

func checkWorkingCopy(cl *ui.Checklist, basedir string, req change.Request) {
	ctx, err := workspace.Load(basedir)
	if err != nil {
		cl.Add(ui.Check{Name: "base directory", Required: true, Detail: err.Error()})
		return
	}
	dir, err := ctx.ProjectDir(req.Project)
	if err != nil {
		cl.Add(ui.Check{Name: "project", Required: true, Detail: err.Error()})
		return
	}
	cl.Add(ui.Check{Name: "project", OK: true, Required: true, Detail: req.Project})

	if err := workspace.CheckDir(dir); err != nil {
		cl.Add(ui.Check{Name: "working copy", Required: true, Detail: err.Error()})
		return
	}
	if !git.IsCloned(dir) {
		cl.Add(ui.Check{Name: "working copy", Required: true, Detail: dir + " is not a git repository"})
		return
	}

	detail := dir
	if head, err := git.ReadHead(dir); err == nil {
		detail = fmt.Sprintf("%s (%s)", dir, head)
	}
	cl.Add(ui.Check{Name: "working copy", OK: true, Required: true, Detail: detail})

	if dirty, err := git.IsDirty(dir); err == nil && dirty {
		cl.Add(ui.Check{Name: "clean tree", Detail: "uncommitted changes may block git checkout FETCH_HEAD"})
	} else if err == nil {
		cl.Add(ui.Check{Name: "clean tree", OK: true, Detail: "no local changes"})
	}
}
