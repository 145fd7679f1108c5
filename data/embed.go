package data

import (
	"embed"
)

// FormsFS holds the read-only form definitions served to the renderer
//
//go:embed forms/*.json
var FormsFS embed.FS

//go:embed initdb/mariadb/001-ddl-audit.sql
var InitdbMariaDBTables string

//go:embed initdb/mariadb/002-ddl-privileges.sql
var InitdbMariaDBPrivileges string
