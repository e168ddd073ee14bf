package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Eval    bool
	Resolve bool
	Patch   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("SCIM_DEBUG_PARSE")
	d.Eval = boolEnv("SCIM_DEBUG_EVAL")
	d.Resolve = boolEnv("SCIM_DEBUG_RESOLVE")
	d.Patch = boolEnv("SCIM_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Eval() bool {
	return d.Eval
}
func Resolve() bool {
	return d.Resolve
}
func Patch() bool {
	return d.Patch
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
