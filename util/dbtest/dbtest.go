// Package dbtest registers a no-op database/sql driver so services that own
// transaction boundaries can run in unit tests without Postgres. Begin,
// Commit and Rollback succeed; any statement execution fails, which is fine
// because tests stub the repository layer.
package dbtest

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
)

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("dbtest: no statements") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

var register sync.Once

// Open returns a *sql.DB whose transactions always begin and commit cleanly.
func Open() *sql.DB {
	register.Do(func() { sql.Register("dbtest", stubDriver{}) })
	db, err := sql.Open("dbtest", "")
	if err != nil {
		panic(err)
	}
	return db
}
