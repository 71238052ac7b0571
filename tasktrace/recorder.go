// Package tasktrace records the boot-task dispatch of a run into a SQLite
// database, so that the task schedule of a native executable can be
// inspected after the fact.
package tasktrace

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

const tableName = "task_dispatch"

// A TaskRecord is one row of the dispatch table: one task invocation of
// one run.
type TaskRecord struct {
	RunID    string
	Seq      int
	Phase    string
	Task     string
	Priority int
	StartNs  int64
	EndNs    int64
}

// A Recorder stores TaskRecords into a SQLite database. Records are
// buffered and flushed in batches; a flush is also registered with atexit
// so that an executable that terminates through atexit.Exit does not lose
// the tail of the trace.
type Recorder struct {
	db    *sql.DB
	runID string

	seq       int
	pending   []TaskRecord
	batchSize int
}

// NewRecorder creates a Recorder writing into path + ".sqlite3". It
// panics if the file already exists or cannot be created.
func NewRecorder(path string) *Recorder {
	if path == "" {
		path = "nativesim_trace_" + xid.New().String()
	}

	filename := path + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Recording task dispatch into %s\n", filename)

	r := &Recorder{
		db:        db,
		runID:     xid.New().String(),
		batchSize: 1024,
	}

	r.createTable()

	atexit.Register(func() { r.Flush() })

	return r
}

// RunID returns the identifier that tags every record of this run.
func (r *Recorder) RunID() string {
	return r.runID
}

// DB exposes the underlying database, mainly for inspection in tests.
func (r *Recorder) DB() *sql.DB {
	return r.db
}

func (r *Recorder) createTable() {
	fields := structs.Names(TaskRecord{})

	query := "CREATE TABLE " + tableName +
		" (\n\t" + strings.Join(fields, ",\n\t") + "\n);"

	r.mustExecute(query)
}

func (r *Recorder) record(tr TaskRecord) {
	tr.RunID = r.runID
	tr.Seq = r.seq
	r.seq++

	r.pending = append(r.pending, tr)

	if len(r.pending) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all buffered records into the database.
func (r *Recorder) Flush() {
	if len(r.pending) == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	defer r.mustExecute("COMMIT TRANSACTION")

	stmt := r.prepareInsert()
	defer stmt.Close()

	for _, tr := range r.pending {
		v := reflect.ValueOf(tr)

		args := make([]any, 0, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			args = append(args, v.Field(i).Interface())
		}

		_, err := stmt.Exec(args...)
		if err != nil {
			panic(err)
		}
	}

	r.pending = nil
}

// Close flushes the buffered records and closes the database.
func (r *Recorder) Close() {
	r.Flush()

	err := r.db.Close()
	if err != nil {
		panic(err)
	}
}

func (r *Recorder) prepareInsert() *sql.Stmt {
	fields := structs.Names(TaskRecord{})
	for i := range fields {
		fields[i] = "?"
	}

	query := "INSERT INTO " + tableName +
		" VALUES (" + strings.Join(fields, ", ") + ")"

	stmt, err := r.db.Prepare(query)
	if err != nil {
		panic(err)
	}

	return stmt
}

func (r *Recorder) mustExecute(query string) sql.Result {
	res, err := r.db.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}
