package pg

import (
	"context"
	"database/sql"
	"time"

	"github.com/IKUN2788/Lost-pet/backend/internal/service"
	"github.com/IKUN2788/Lost-pet/shared/config"
	"github.com/IKUN2788/Lost-pet/shared/logger"
	sharedpg "github.com/IKUN2788/Lost-pet/shared/storage/pg"
)

type Querier = sharedpg.Querier

const queryTimeout = 5 * time.Second

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

var (
	_ service.UserStorage    = (*Storage)(nil)
	_ service.PostStorage    = (*Storage)(nil)
	_ service.CommentStorage = (*Storage)(nil)
	_ service.GCStorage      = (*Storage)(nil)
)

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to database", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := sharedpg.Connect(cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to database")
	return &Storage{db: db, cfg: cfg}, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) withTx(fn func(tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return sharedpg.WithTx(ctx, s.db, fn)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
