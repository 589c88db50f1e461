package main

import (
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

// normalizeArgs moves command flags written after positional arguments in
// front of them, because urfave/cli stops parsing flags at the first
// positional. This accepts "crop <image> --crop L T R B". A --crop value
// given as four separate integers is joined into "L,T,R,B".
func normalizeArgs(app *cli.App, args []string) []string {
	if len(args) < 2 {
		return args
	}
	out := []string{args[0]}

	i := 1
	for ; i < len(args) && isFlagArg(args[i]); i++ {
		out = append(out, args[i])
		if takesValue(lookupFlag(app.Flags, args[i])) && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	if i >= len(args) {
		return out
	}

	cmd := app.Command(args[i])
	out = append(out, args[i])
	i++
	if cmd == nil {
		return append(out, args[i:]...)
	}

	var flags, positional []string
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i:]...)
			break
		}
		if !isFlagArg(arg) {
			positional = append(positional, arg)
			continue
		}

		flags = append(flags, arg)
		flag := lookupFlag(cmd.Flags, arg)
		if !takesValue(flag) || i+1 >= len(args) {
			continue
		}
		i++
		value := args[i]
		if flag.Names()[0] == "crop" && i+3 < len(args) && allIntegers(args[i:i+4]) {
			value = strings.Join(args[i:i+4], ",")
			i += 3
		}
		flags = append(flags, value)
	}
	return append(append(out, flags...), positional...)
}

// isFlagArg reports whether arg looks like a flag. Negative numbers do not.
func isFlagArg(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err != nil
}

// lookupFlag finds the flag named by arg. "--name=value" returns nil since
// its value is already attached.
func lookupFlag(flags []cli.Flag, arg string) cli.Flag {
	name := strings.TrimLeft(arg, "-")
	if strings.Contains(name, "=") {
		return nil
	}
	for _, f := range flags {
		for _, n := range f.Names() {
			if n == name {
				return f
			}
		}
	}
	return nil
}

func takesValue(f cli.Flag) bool {
	v, ok := f.(interface{ TakesValue() bool })
	return ok && v.TakesValue()
}

func allIntegers(values []string) bool {
	for _, v := range values {
		if _, err := strconv.Atoi(v); err != nil {
			return false
		}
	}
	return true
}
