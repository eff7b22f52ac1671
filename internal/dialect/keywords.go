package dialect

// commonKeywords are SQL keywords shared across all supported dialects.
// This list is the direct descendant of internal/completion's old
// CommonKeywords table, now annotated with classification and query-role.
var commonKeywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER",
	"FULL", "CROSS", "ON", "AND", "OR", "NOT", "IN", "EXISTS", "BETWEEN",
	"LIKE", "ILIKE", "IS", "NULL", "AS", "CASE", "WHEN", "THEN", "ELSE",
	"END", "INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE", "CREATE",
	"ALTER", "DROP", "TABLE", "VIEW", "INDEX", "UNIQUE", "PRIMARY", "KEY",
	"FOREIGN", "REFERENCES", "CONSTRAINT", "DEFAULT", "CHECK", "CASCADE",
	"RESTRICT", "GROUP", "BY", "ORDER", "ASC", "DESC", "HAVING", "LIMIT",
	"OFFSET", "DISTINCT", "ALL", "ANY", "SOME", "UNION", "INTERSECT",
	"EXCEPT", "WITH", "RECURSIVE", "RETURNING", "BEGIN", "COMMIT",
	"ROLLBACK", "TRANSACTION", "GRANT", "REVOKE", "EXPLAIN", "ANALYZE",
	"VACUUM", "TRUNCATE", "IF", "REPLACE", "TEMPORARY", "TEMP",
	"CALL", "EXEC", "EXECUTE", "PROCEDURE", "FUNCTION",
}

var commonFunctions = []string{
	"COUNT", "SUM", "AVG", "MIN", "MAX", "COALESCE", "NULLIF", "CAST",
	"CASE", "LOWER", "UPPER", "TRIM", "LTRIM", "RTRIM", "LENGTH",
	"SUBSTRING", "REPLACE", "CONCAT", "ABS", "CEIL", "FLOOR", "ROUND",
	"NOW", "CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME", "EXTRACT",
	"DATE_TRUNC", "TO_CHAR", "TO_DATE", "TO_NUMBER", "ROW_NUMBER", "RANK",
	"DENSE_RANK", "LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTILE",
	"STRING_AGG", "ARRAY_AGG", "JSON_AGG", "BOOL_AND", "BOOL_OR", "EVERY",
}

var commonTypes = []string{
	"INT", "INTEGER", "BIGINT", "SMALLINT", "DECIMAL", "NUMERIC", "REAL",
	"DOUBLE", "FLOAT", "VARCHAR", "CHAR", "TEXT", "BOOLEAN", "DATE", "TIME",
	"TIMESTAMP", "BLOB", "JSON",
}

var postgresKeywords = []string{
	"SERIAL", "BIGSERIAL", "RETURNING", "ILIKE", "SIMILAR", "LATERAL",
	"MATERIALIZED", "CONCURRENTLY", "TABLESPACE", "SCHEMA", "EXTENSION",
	"SEQUENCE", "OWNED", "NOTIFY", "LISTEN", "PERFORM", "RAISE", "COPY",
}

var mysqlKeywords = []string{
	"AUTO_INCREMENT", "ENGINE", "CHARSET", "COLLATE", "SHOW", "DESCRIBE",
	"USE", "DATABASES", "TABLES", "COLUMNS", "STATUS", "VARIABLES",
	"PROCESSLIST", "BINARY", "UNSIGNED", "ZEROFILL", "ENUM", "MEDIUMTEXT",
	"LONGTEXT", "TINYINT", "MEDIUMINT",
}

var sqliteKeywords = []string{
	"PRAGMA", "AUTOINCREMENT", "GLOB", "ATTACH", "DETACH", "REINDEX",
	"INDEXED", "WITHOUT", "ROWID", "STRICT",
}

var duckdbKeywords = []string{
	"PIVOT", "UNPIVOT", "SAMPLE", "USING", "QUALIFY", "COLUMNS", "STRUCT",
	"LIST", "MAP", "HUGEINT", "UBIGINT", "UINTEGER",
}

// entityQueryWords introduce a TABLE-context completion (spec §4.3).
var entityQueryWords = []string{"FROM", "UPDATE", "TABLE", "INTO", "DELETE", "JOIN"}

// attributeQueryWords introduce a COLUMN-context completion.
var attributeQueryWords = []string{
	"SELECT", "WHERE", "SET", "ON", "BY", "HAVING", "AND", "OR",
}

// execQueryWords introduce an EXEC-context completion.
var execQueryWords = []string{"CALL", "EXEC", "EXECUTE"}

var queryLeadWords = []string{"SELECT", "WITH", "EXPLAIN", "VALUES"}
var dmlLeadWords = []string{"INSERT", "UPDATE", "DELETE"}
var ddlLeadWords = []string{"CREATE", "ALTER", "DROP", "TRUNCATE"}
var executeLeadWords = []string{"CALL", "EXEC", "EXECUTE"}
