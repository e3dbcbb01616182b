package common

import (
	"fmt"
	"regexp"
)

// ValidatePattern compiles a regex pattern and checks it has the expected
// number of capture groups.
func ValidatePattern(pattern string, groups int) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	if re.NumSubexp() != groups {
		return fmt.Errorf("pattern %q has %d capture groups, want %d", pattern, re.NumSubexp(), groups)
	}
	return nil
}
