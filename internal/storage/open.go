package storage

import (
	"fmt"
	"strings"

	"github.com/julianstephens/timecompass/internal/errors"
	"github.com/julianstephens/timecompass/internal/keyring"
	"github.com/julianstephens/timecompass/internal/logger"
	"github.com/julianstephens/timecompass/internal/storage/postgres"
	"github.com/julianstephens/timecompass/internal/storage/sqlite"
	"github.com/julianstephens/timecompass/internal/utils"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendJSON     Backend = "json"
)

// postgresKeyword selects PostgreSQL with the connection string taken from
// the environment or the keyring.
const postgresKeyword = "postgres"

// Detect picks the backend for a --config value.
func Detect(config string) Backend {
	switch {
	case strings.EqualFold(config, postgresKeyword), strings.EqualFold(config, "postgresql"),
		postgres.IsConnString(config):
		return BackendPostgres
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return BackendJSON
	default:
		return BackendSQLite
	}
}

// Open builds the Provider for a --config value without connecting.
// Connection strings given directly must not embed a password.
func Open(config string) (Provider, error) {
	config = strings.TrimSpace(config)

	switch Detect(config) {
	case BackendPostgres:
		if postgres.IsConnString(config) {
			if err := postgres.ValidateConnString(config); err != nil {
				return nil, err
			}
			return postgres.New(config), nil
		}
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, err
		}
		logger.Debug("Using PostgreSQL connection string", "source", source)
		return postgres.New(connStr), nil

	case BackendJSON:
		path, err := utils.ExpandPath(config)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		return NewJSONStore(path), nil

	default:
		path, err := utils.ExpandPath(config)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		return sqlite.NewStore(path), nil
	}
}

// LoadOrInit loads p, creating it with default settings when nothing has
// been stored yet.
func LoadOrInit(p Provider) error {
	err := p.Load()
	if !errors.Is(err, errors.ErrNotInitialized) {
		return err
	}
	logger.Info("No storage found, creating it with default settings", "path", p.GetConfigPath())
	if err := p.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return nil
}
