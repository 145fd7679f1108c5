// Helpers for running the audit database integration tests against a real
// MariaDB instance. Used by the standalone executable in cmd/testcontainers
// and by the tests in tests/integration.
// Expects environment variables to be loaded from .env files.
//

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/mindfulway/intake-backend/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	auditDatabase = "intake_audit"
	auditUser     = "intake_app"
	auditPassword = "CHANGE_ME"
)

type TestContainers struct {
	Network     *testcontainers.DockerNetwork
	DBContainer testcontainers.Container

	// Host side coordinates of the audit database, set after startup.
	DBHost       string
	DBPort       string
	RootPassword string
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MariaDB: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// AppDSN returns a go-sql-driver DSN for the application audit account.
func (tc *TestContainers) AppDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		auditUser, auditPassword, tc.DBHost, tc.DBPort, auditDatabase)
}

// RootDSN returns a go-sql-driver DSN for the root account, no database selected.
func (tc *TestContainers) RootDSN() string {
	return fmt.Sprintf("root:%s@tcp(%s:%s)/", tc.RootPassword, tc.DBHost, tc.DBPort)
}

// DockerAvailable reports whether a docker daemon is reachable. Integration
// tests use it to skip instead of fail on machines without docker.
func DockerAvailable() bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err = cli.Ping(ctx)
	return err == nil
}

// CreateAuditTestContainers starts a MariaDB container and applies the
// embedded audit schema and privilege DDL to it.
func CreateAuditTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{
		RootPassword: uuid.New().String(),
	}

	dbImage := os.Getenv("AUDIT_DB_IMAGE")
	if dbImage == "" {
		dbImage = "mariadb:11"
	}

	// Create a network
	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw

	tcpDbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}

	// Create and start the MariaDB container
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImage,
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": testContainers.RootPassword,
				"MYSQL_DATABASE":      auditDatabase,
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {"audit-db"},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start MariaDB")
	}
	testContainers.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	testContainers.DBHost = dbHost
	testContainers.DBPort = dbPort.Port()

	if err := performAuditDBInit(testContainers); err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to initialize audit database")
	}

	logMessage(t, "AUDIT_DB=%s:%s", dbHost, dbPort.Port())
	logMessage(t, "Audit testcontainer started successfully")
	return testContainers, nil
}

func performAuditDBInit(tc *TestContainers) error {
	db, err := sql.Open("mysql", tc.RootDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	if err := executeSQL(db, data.InitdbMariaDBTables); err != nil {
		return fmt.Errorf("failed to execute tables init sql: %w", err)
	}
	if err := executeSQL(db, data.InitdbMariaDBPrivileges); err != nil {
		return fmt.Errorf("failed to execute privileges init sql: %w", err)
	}
	return nil
}

// executeSQL runs a multi-statement DDL script one statement at a time.
func executeSQL(db *sql.DB, script string) error {
	var stripped []string
	for _, line := range strings.Split(script, "\n") {
		stripped = append(stripped, stripLineComment(line))
	}

	statements := strings.Split(strings.Join(stripped, "\n"), ";")
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), stmt)
		}
	}
	return nil
}

// stripLineComment drops a trailing "--" comment, honoring single-quoted
// strings so a literal containing "--" survives.
func stripLineComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\'':
			inQuote = !inQuote
		case !inQuote && line[i] == '-' && i+1 < len(line) && line[i+1] == '-':
			return line[:i]
		}
	}
	return line
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
