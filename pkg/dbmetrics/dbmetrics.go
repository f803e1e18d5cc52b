package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/Iqra-Naeem-05/easycook-backend/pkg/metrics"
)

// DBExecutor минимальный интерфейс для выполнения запросов.
// Реализуется *sql.DB, *sql.Tx, *DB и *Tx.
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TxExecutor интерфейс транзакции. Реализуется *sql.Tx и *Tx.
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type executorKey struct{}

// WithExecutor кладет активную транзакцию в контекст.
// Репозитории достают её через GetExecutor и выполняют запросы внутри транзакции.
func WithExecutor(ctx context.Context, exec DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey{}, exec)
}

// GetExecutor возвращает executor из контекста, если там есть активная
// транзакция, иначе переданный fallback (обычно пул соединений).
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if exec, ok := ctx.Value(executorKey{}).(DBExecutor); ok {
		return exec
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли контекст внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey{}).(DBExecutor)
	return ok
}

// DB обертка над *sql.DB, снимающая метрики по каждому запросу
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает *sql.DB сбором метрик запросов
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает фоновый сбор метрик
// connection pool. Остановка — закрытием stopCh.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				stats := db.Stats()
				m.SetDBPoolStats(serviceName, stats.OpenConnections, stats.Idle, stats.InUse)
			}
		}
	}()

	return wrapped
}

// QueryContext выполняет запрос с множеством строк результата
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query", err == nil, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос с одной строкой результата
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query_row", true, time.Since(start))
	return row
}

// ExecContext выполняет запрос без результата
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("exec", err == nil, time.Since(start))
	return result, err
}

// BeginTx начинает транзакцию, обернутую сбором метрик
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.metrics.ObserveDBQuery("begin_tx", err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// Tx обертка над *sql.Tx со сбором метрик
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// QueryContext выполняет запрос внутри транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_query", err == nil, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос с одной строкой внутри транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_query_row", true, time.Since(start))
	return row
}

// ExecContext выполняет запрос без результата внутри транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveDBQuery("tx_exec", err == nil, time.Since(start))
	return result, err
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.metrics.ObserveDBQuery("commit", err == nil, time.Since(start))
	return err
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	start := time.Now()
	err := t.tx.Rollback()
	t.metrics.ObserveDBQuery("rollback", err == nil, time.Since(start))
	return err
}
