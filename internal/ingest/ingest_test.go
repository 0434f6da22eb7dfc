package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftdb/sift/internal/row"
)

func TestParseCatalog_TypeInference(t *testing.T) {
	csv := "ID,Score,City,Note\n1,9.5,Gander,\n2,7,St. John's,ok\n"

	catalog, err := ParseCatalog(csv, "T1")
	require.NoError(t, err)

	records, ok := catalog["t1"]
	require.True(t, ok, "table name should be canonicalized")
	require.Len(t, records, 2)

	assert.Equal(t, row.Record{
		"id":    row.Int(1),
		"score": row.Float(9.5),
		"city":  row.Str("Gander"),
		"note":  row.Null{},
	}, records[0])

	// "7" has no decimal point so the integer parse wins.
	assert.Equal(t, row.Int(7), records[1].Get("score"))
	assert.Equal(t, row.Str("ok"), records[1].Get("note"))
}

func TestParseCatalog_SkipsMismatchedRows(t *testing.T) {
	csv := "a,b\n1,2\n3\n4,5\n"

	catalog, err := ParseCatalog(csv, "t1")
	require.NoError(t, err)
	require.Len(t, catalog["t1"], 2)
	assert.Equal(t, row.Int(1), catalog["t1"][0].Get("a"))
	assert.Equal(t, row.Int(4), catalog["t1"][1].Get("a"))
	assert.Equal(t, row.Int(5), catalog["t1"][1].Get("b"))
}

func TestParseCatalog_HeaderOnly(t *testing.T) {
	_, err := ParseCatalog("a,b\n", "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header row")
}

func TestParseCatalog_AllRowsSkipped(t *testing.T) {
	_, err := ParseCatalog("a,b\n1\n2,3,4\n", "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid data rows")
}

func TestParseCatalog_TrimsWhitespace(t *testing.T) {
	csv := "  name , age \n Alice , 30 \n"

	catalog, err := ParseCatalog(csv, "people")
	require.NoError(t, err)

	rec := catalog["people"][0]
	assert.Equal(t, row.Str("Alice"), rec.Get("name"))
	assert.Equal(t, row.Int(30), rec.Get("age"))
}
