package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sable/internal/sil"
	"sable/internal/types"
)

var (
	verifyWorkers int
	verifyIters   int
)

// verify hammers shared, fully built type handles with read-only queries
// from many goroutines. Handles are value types and the arena is immutable
// once built, so every reader must observe identical answers.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Stress concurrent read-only type queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyColorFlag(cmd)
		return runVerify()
	},
}

func init() {
	verifyCmd.Flags().IntVar(&verifyWorkers, "workers", 8, "concurrent readers")
	verifyCmd.Flags().IntVar(&verifyIters, "iters", 10000, "query iterations per reader")
}

func runVerify() error {
	ctx := types.NewContext()

	point := ctx.RegisterStruct("Point")
	point.SetFields([]types.Field{
		{Name: "x", Type: ctx.BuiltinFloatType(types.FloatIEEE64)},
		{Name: "y", Type: ctx.BuiltinFloatType(types.FloatIEEE64)},
	})
	pointTy := sil.PrimitiveObject(ctx.StructType(point))

	handles := []sil.Type{
		sil.BuiltinWordType(ctx),
		sil.OptionalType(sil.BuiltinWordType(ctx)),
		sil.RawPointerType(ctx).AsAddress(),
		sil.ExceptionType(ctx),
		pointTy,
	}

	var g errgroup.Group
	for w := 0; w < verifyWorkers; w++ {
		g.Go(func() error {
			for i := 0; i < verifyIters; i++ {
				h := handles[i%len(handles)]
				if h.AsAddress().AsObject() != h.AsObject() {
					return fmt.Errorf("category flip mismatch for %s", h)
				}
				if h.AsAddress().ASTType() != h.ASTType() {
					return fmt.Errorf("category flip changed the AST type of %s", h)
				}
				if got := h.WithCategoryOf(h); got != h {
					return fmt.Errorf("identity category copy mismatch for %s", h)
				}
				if h.IsExistentialType() && h.PreferredExistentialRepresentation(nil) == sil.ReprNone {
					return fmt.Errorf("existential %s reports no representation", h)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	okColor := color.New(color.FgGreen, color.Bold)
	fmt.Println(okColor.Sprintf("ok"), "-", verifyWorkers*verifyIters, "queries across", verifyWorkers, "readers")
	return nil
}
