package recorder

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/qq148376839/vnpy/internal/domain"
)

var log = logrus.WithField("component", "recorder")

// Store K 线落库存储（SQLite）
type Store struct {
	db *sql.DB
}

// Open 打开（必要时创建）K 线数据库
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is required")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "mkdir db dir")
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	db.SetMaxOpenConns(1) // SQLite：单连接更稳定
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`
CREATE TABLE IF NOT EXISTS bars (
  symbol TEXT NOT NULL,
  exchange TEXT NOT NULL,
  interval TEXT NOT NULL,
  datetime TEXT NOT NULL,
  open REAL NOT NULL,
  high REAL NOT NULL,
  low REAL NOT NULL,
  close REAL NOT NULL,
  volume REAL NOT NULL,
  PRIMARY KEY (symbol, exchange, interval, datetime)
);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "migrate: %s", stmt)
		}
	}
	return nil
}

// Close 关闭数据库
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBars 批量写入 K 线，主键冲突时覆盖（同一根 K 线的修正数据）
func (s *Store) SaveBars(ctx context.Context, bars []*domain.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO bars (symbol, exchange, interval, datetime, open, high, low, close, volume)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(symbol, exchange, interval, datetime) DO UPDATE SET
  open=excluded.open, high=excluded.high, low=excluded.low,
  close=excluded.close, volume=excluded.volume`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, bar := range bars {
		_, err := stmt.ExecContext(ctx,
			bar.Symbol, string(bar.Exchange), string(bar.Interval),
			bar.Datetime.UTC().Format(time.RFC3339),
			bar.OpenPrice, bar.HighPrice, bar.LowPrice, bar.ClosePrice, bar.Volume,
		)
		if err != nil {
			return errors.Wrapf(err, "insert bar %s %s", bar.VTSymbol(), bar.Datetime)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	log.Debugf("已写入 %d 根 K 线", len(bars))
	return nil
}

// LoadBars 按合约与周期读取 K 线，按时间升序返回
func (s *Store) LoadBars(ctx context.Context, symbol string, exchange domain.Exchange, interval domain.Interval) ([]*domain.Bar, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT symbol, exchange, datetime, open, high, low, close, volume
FROM bars WHERE symbol = ? AND exchange = ? AND interval = ?
ORDER BY datetime ASC`, symbol, string(exchange), string(interval))
	if err != nil {
		return nil, errors.Wrap(err, "query bars")
	}
	defer rows.Close()

	var bars []*domain.Bar
	for rows.Next() {
		var (
			bar domain.Bar
			ex  string
			ts  string
		)
		if err := rows.Scan(&bar.Symbol, &ex, &ts,
			&bar.OpenPrice, &bar.HighPrice, &bar.LowPrice, &bar.ClosePrice, &bar.Volume); err != nil {
			return nil, errors.Wrap(err, "scan bar")
		}
		bar.Exchange = domain.Exchange(ex)
		bar.Interval = interval
		dt, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, errors.Wrapf(err, "parse datetime %s", ts)
		}
		bar.Datetime = dt
		bars = append(bars, &bar)
	}
	return bars, rows.Err()
}

// Count 返回指定合约与周期的 K 线数量
func (s *Store) Count(ctx context.Context, symbol string, exchange domain.Exchange, interval domain.Interval) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM bars WHERE symbol = ? AND exchange = ? AND interval = ?`,
		symbol, string(exchange), string(interval)).Scan(&n)
	if err != nil {
		return 0, errors.Wrap(err, "count bars")
	}
	return n, nil
}
