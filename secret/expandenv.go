package secret

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnvStrict expands $VAR and ${VAR} references in s, failing when
// any ${VAR} names a variable missing from the environment. The config
// loader uses it for provider-credential indirection, so a dangling
// reference surfaces at startup instead of becoming an empty credential.
// `$$` emits a literal `$`.
func ExpandEnvStrict(s string) (string, error) {
	const literalDollar = "\x00literal-dollar\x00"
	s = strings.ReplaceAll(s, "$$", literalDollar)

	if missing := missingRefs(s); len(missing) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	s = os.ExpandEnv(s)
	return strings.ReplaceAll(s, literalDollar, "$"), nil
}

// missingRefs returns the sorted, de-duplicated names of ${VAR}
// references in s that are unset in the environment.
func missingRefs(s string) []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, match := range envRefPattern.FindAllStringSubmatch(s, -1) {
		name := match[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := os.LookupEnv(name); !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
