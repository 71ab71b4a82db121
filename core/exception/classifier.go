package exception

import (
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
)

// Policy decides the severity of errors whose status code has no explicit override.
type Policy int

const (
	// PolicyClientWarning logs 4xx errors as warnings and everything else as critical.
	PolicyClientWarning Policy = iota
	// PolicyBelowServerError logs every status below 500 as an error and everything
	// else as critical.
	PolicyBelowServerError
)

func (p Policy) String() string {
	switch p {
	case PolicyClientWarning:
		return "client_warning"
	case PolicyBelowServerError:
		return "below_server_error"
	}
	return "policy(" + strconv.Itoa(int(p)) + ")"
}

// ParsePolicy parses a policy name. "warning" and "error" are accepted as
// short names.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "client_warning", "warning":
		return PolicyClientWarning, nil
	case "below_server_error", "error":
		return PolicyBelowServerError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// LevelTable maps HTTP status codes to explicit severities.
type LevelTable map[int]logger.Severity

// ParseLevelTable builds a table from string pairs such as {"404": "notice"}.
func ParseLevelTable(m map[string]string) (LevelTable, error) {
	t := make(LevelTable, len(m))
	for k, v := range m {
		code, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || code < 100 || code > 599 {
			return nil, fmt.Errorf("%w: status code %q", ErrInvalidLevelTable, k)
		}
		sev, err := logger.ParseSeverity(v)
		if err != nil {
			return nil, fmt.Errorf("%w: status %d: %w", ErrInvalidLevelTable, code, err)
		}
		t[code] = sev
	}
	return t, nil
}

// Classifier maps errors to log severities. The zero value uses
// PolicyClientWarning and no overrides.
type Classifier struct {
	levels LevelTable
	policy Policy
}

// NewClassifier copies levels; later changes to the map have no effect.
func NewClassifier(levels LevelTable, policy Policy) Classifier {
	return Classifier{levels: maps.Clone(levels), policy: policy}
}

// Policy returns the configured policy.
func (c Classifier) Policy() Policy {
	return c.policy
}

// Classify returns the severity for err:
// an override for its status code if one exists, otherwise the policy decision
// for status codes below 500, otherwise critical.
func (c Classifier) Classify(err error) logger.Severity {
	var sc kernel.StatusCoder
	if !errors.As(err, &sc) {
		return logger.SeverityCritical
	}

	code := sc.StatusCode()
	if sev, ok := c.levels[code]; ok {
		return sev
	}

	switch c.policy {
	case PolicyBelowServerError:
		if code < 500 {
			return logger.SeverityError
		}
	default:
		if code >= 400 && code < 500 {
			return logger.SeverityWarning
		}
	}
	return logger.SeverityCritical
}
