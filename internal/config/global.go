package config

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"os"
	"role-dashboard/internal/utils/runtime"
	"strings"
	"time"
)

const (
	developmentFlag   = "development"
	failureRateFlag   = "failure-rate"
	failReadsFlag     = "fail-reads"
	minLatencyFlag    = "min-latency"
	maxLatencyFlag    = "max-latency"
	seedFlag          = "seed"
	toastDurationFlag = "toast-duration"
	refreshFlag       = "refresh"
	assignFlag        = "assign"
)

type Config struct {
	Backend       BackendConfig
	Notifications NotificationConfig

	Development bool

	// Assignments are saved in order after the initial load
	Assignments []Assignment `validate:"dive"`
	// Refresh refetches everything once the assignments are done
	Refresh bool
}

type BackendConfig struct {
	FailureRate float64       `validate:"gte=0,lte=1"`
	FailReads   bool
	MinLatency  time.Duration `validate:"gte=0"`
	MaxLatency  time.Duration `validate:"gtefield=MinLatency"`
	Seed        int64
}

type NotificationConfig struct {
	Duration time.Duration `validate:"gte=0"`
}

// Assignment is the full permission set a role should end up with.
// Role and permissions are referenced by name or id.
type Assignment struct {
	Role        string   `validate:"required"`
	Permissions []string `validate:"dive,required"`
}

func LoadGlobalConfig() (*Config, error) {
	return Load(viper.GetViper(), pflag.CommandLine, os.Args[1:])
}

func Load(v *viper.Viper, fs *pflag.FlagSet, args []string) (*Config, error) {
	v.SetDefault(developmentFlag, true)
	v.SetDefault(failureRateFlag, 0.25)
	v.SetDefault(failReadsFlag, false)
	v.SetDefault(minLatencyFlag, 200*time.Millisecond)
	v.SetDefault(maxLatencyFlag, 1000*time.Millisecond)
	v.SetDefault(seedFlag, 0)
	v.SetDefault(toastDurationFlag, 5*time.Second)
	v.SetDefault(refreshFlag, false)

	fs.Bool(developmentFlag, v.GetBool(developmentFlag), "Development mode")
	fs.Float64(failureRateFlag, v.GetFloat64(failureRateFlag), "Chance in [0, 1] that a backend call fails")
	fs.Bool(failReadsFlag, v.GetBool(failReadsFlag), "Apply the failure rate to reads as well as writes")
	fs.Duration(minLatencyFlag, v.GetDuration(minLatencyFlag), "Minimum simulated backend latency")
	fs.Duration(maxLatencyFlag, v.GetDuration(maxLatencyFlag), "Maximum simulated backend latency")
	fs.Int64(seedFlag, v.GetInt64(seedFlag), "Random seed for the simulated backend, 0 for time based")
	fs.Duration(toastDurationFlag, v.GetDuration(toastDurationFlag), "How long notifications stay visible")
	fs.Bool(refreshFlag, v.GetBool(refreshFlag), "Refetch roles and permissions after saving assignments")
	fs.StringArray(assignFlag, nil, `Permissions to save for a role, as "Role=Permission;Permission" (repeatable)`)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	// Bind the viper flags to environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	runtime.Must(v.BindEnv(developmentFlag))
	runtime.Must(v.BindEnv(failureRateFlag))
	runtime.Must(v.BindEnv(failReadsFlag))
	runtime.Must(v.BindEnv(minLatencyFlag))
	runtime.Must(v.BindEnv(maxLatencyFlag))
	runtime.Must(v.BindEnv(seedFlag))
	runtime.Must(v.BindEnv(toastDurationFlag))
	runtime.Must(v.BindEnv(refreshFlag))

	rawAssignments, err := fs.GetStringArray(assignFlag)
	if err != nil {
		return nil, err
	}
	assignments, err := ParseAssignments(rawAssignments)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Backend: BackendConfig{
			FailureRate: v.GetFloat64(failureRateFlag),
			FailReads:   v.GetBool(failReadsFlag),
			MinLatency:  v.GetDuration(minLatencyFlag),
			MaxLatency:  v.GetDuration(maxLatencyFlag),
			Seed:        v.GetInt64(seedFlag),
		},
		Notifications: NotificationConfig{
			Duration: v.GetDuration(toastDurationFlag),
		},
		Development: v.GetBool(developmentFlag),
		Assignments: assignments,
		Refresh:     v.GetBool(refreshFlag),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ParseAssignments parses values of the form "Role=Permission;Permission".
// An empty right hand side clears the role's permissions.
func ParseAssignments(raw []string) ([]Assignment, error) {
	assignments := make([]Assignment, 0, len(raw))

	for _, r := range raw {
		role, perms, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: expected Role=Permission;Permission", r)
		}

		permissions := make([]string, 0)
		for _, p := range strings.Split(perms, ";") {
			if p = strings.TrimSpace(p); p != "" {
				permissions = append(permissions, p)
			}
		}

		assignments = append(assignments, Assignment{
			Role:        strings.TrimSpace(role),
			Permissions: permissions,
		})
	}

	return assignments, nil
}
