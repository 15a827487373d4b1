package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sable/internal/sil"
	"sable/internal/types"
)

var dumpMangled bool

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the well-known SIL types",
	Run: func(cmd *cobra.Command, args []string) {
		applyColorFlag(cmd)
		runDump()
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpMangled, "mangled", false, "also print mangled names")
}

func applyColorFlag(cmd *cobra.Command) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
}

func runDump() {
	ctx := types.NewContext()

	nameColor := color.New(color.FgCyan, color.Bold)
	typeColor := color.New(color.FgGreen)
	dimColor := color.New(color.Faint)

	entries := []struct {
		name string
		ty   sil.Type
	}{
		{"native object", sil.NativeObjectType(ctx)},
		{"bridge object", sil.BridgeObjectType(ctx)},
		{"raw pointer", sil.RawPointerType(ctx)},
		{"word", sil.BuiltinWordType(ctx)},
		{"int literal", sil.BuiltinIntegerLiteralType(ctx)},
		{"int8", sil.BuiltinIntegerType(ctx, 8)},
		{"int32", sil.BuiltinIntegerType(ctx, 32)},
		{"int64", sil.BuiltinIntegerType(ctx, 64)},
		{"float32", sil.BuiltinFloatType(ctx, types.FloatIEEE32)},
		{"float64", sil.BuiltinFloatType(ctx, types.FloatIEEE64)},
		{"exception", sil.ExceptionType(ctx)},
		{"token", sil.TokenType(ctx)},
		{"optional word", sil.OptionalType(sil.BuiltinWordType(ctx))},
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %s", nameColor.Sprintf("%-14s", e.name), typeColor.Sprint(e.ty.String()))
		if dumpMangled {
			line += "  " + dimColor.Sprint(e.ty.MangledName())
		}
		fmt.Println(line)
	}
	fmt.Println(dimColor.Sprintf("%d canonical types interned", ctx.NumTypes()))
}
