package output

import "fmt"

// probePrefixes maps probe names to check code prefixes.
// Register new probes here so their SARIF rule IDs stay stable.
var probePrefixes = map[string]string{
	"ssh":        "SSH",
	"firewall":   "FW",
	"user":       "USR",
	"ssh-key":    "KEY",
	"monitoring": "MON",
	"network":    "NET",
	"logging":    "LOG",
}

func prefixFor(probe string) string {
	if prefix, ok := probePrefixes[probe]; ok {
		return prefix
	}
	return "UNK"
}

// codeGenerator hands out sequential check codes per probe, SSH-001 style.
// Codes are positional within a probe, so a given check keeps its code
// across runs as long as the probe's check order is stable.
type codeGenerator struct {
	counters map[string]int
}

func newCodeGenerator() *codeGenerator {
	return &codeGenerator{counters: make(map[string]int)}
}

func (cg *codeGenerator) next(probe string) string {
	cg.counters[probe]++
	return fmt.Sprintf("%s-%03d", prefixFor(probe), cg.counters[probe])
}
