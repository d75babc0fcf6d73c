package models

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// cannedConn answers every query with one fixed row, which is enough to
// exercise how gorm scans stored columns back into model fields.
type cannedConn struct {
	cols []string
	vals []driver.Value
}

func (c *cannedConn) Prepare(string) (driver.Stmt, error) { return nil, io.EOF }
func (c *cannedConn) Close() error                        { return nil }
func (c *cannedConn) Begin() (driver.Tx, error)           { return nil, io.EOF }

func (c *cannedConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return &cannedRows{cols: c.cols, vals: c.vals}, nil
}

type cannedRows struct {
	cols []string
	vals []driver.Value
	done bool
}

func (r *cannedRows) Columns() []string { return r.cols }
func (r *cannedRows) Close() error      { return nil }

func (r *cannedRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	copy(dest, r.vals)
	r.done = true
	return nil
}

type cannedDriver struct{ conn *cannedConn }

func (d cannedDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

type cannedConnector struct{ conn *cannedConn }

func (c cannedConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c cannedConnector) Driver() driver.Driver                        { return cannedDriver{conn: c.conn} }

func openCanned(t *testing.T, cols []string, vals []driver.Value) *gorm.DB {
	t.Helper()
	sqlDB := sql.OpenDB(cannedConnector{conn: &cannedConn{cols: cols, vals: vals}})
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return db
}

func TestSubscriberPreferenceColumnsScan(t *testing.T) {
	db := openCanned(t,
		[]string{"email", "routes", "severities"},
		[]driver.Value{"rider@example.com", []byte(`["4","35M"]`), []byte(`["high","critical"]`)},
	)

	var sub Subscriber
	if err := db.First(&sub).Error; err != nil {
		t.Fatalf("failed to read subscriber row: %v", err)
	}
	if len(sub.Routes) != 2 || sub.Routes[0] != "4" || sub.Routes[1] != "35M" {
		t.Errorf("routes not scanned: %v", sub.Routes)
	}
	if len(sub.Severities) != 2 || sub.Severities[0] != "high" {
		t.Errorf("severities not scanned: %v", sub.Severities)
	}
}

func TestIncidentAffectedColumnsScan(t *testing.T) {
	db := openCanned(t,
		[]string{"title", "affected_modes", "affected_routes"},
		[]driver.Value{"Red line suspended", []byte(`["rail"]`), []byte(`["red"]`)},
	)

	var inc Incident
	if err := db.First(&inc).Error; err != nil {
		t.Fatalf("failed to read incident row: %v", err)
	}
	if len(inc.AffectedModes) != 1 || inc.AffectedModes[0] != "rail" {
		t.Errorf("affected modes not scanned: %v", inc.AffectedModes)
	}
	if len(inc.AffectedRoutes) != 1 || inc.AffectedRoutes[0] != "red" {
		t.Errorf("affected routes not scanned: %v", inc.AffectedRoutes)
	}
}
