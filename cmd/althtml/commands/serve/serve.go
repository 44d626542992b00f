// Package serve implements the althtml CLI's `serve` subcommand: it runs
// the §11.5 compile-preview HTTP service as a github.com/titpetric/platform
// module, the same way the project's other long-running HTTP surfaces are
// bootstrapped.
package serve

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/titpetric/platform"

	"github.com/titpetric/althtml/server"
)

// Run executes the serve command with the given arguments.
func Run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "address to listen on")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: althtml serve [-addr :8080]\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := platform.NewOptions()
	opts.ServerAddr = *addr

	p := platform.New(opts)
	p.Register(NewModule())

	if err := p.Start(context.Background()); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	p.Wait()
	return nil
}

// Module mounts the compile-preview router (server.NewRouter) onto a
// platform.Router, exposing POST /compile over HTTP.
type Module struct {
	platform.UnimplementedModule
}

// NewModule returns a platform.Module wrapping the compile-preview service.
func NewModule() *Module {
	return &Module{}
}

// Name identifies this module in platform's module registry.
func (m *Module) Name() string {
	return "althtml-compile"
}

// Mount wires server.NewRouter's routes onto the platform router.
func (m *Module) Mount(_ context.Context, r platform.Router) error {
	r.Mount("/", server.NewRouter())
	return nil
}
