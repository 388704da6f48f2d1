package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-scout/internal/types"
)

func TestPostingRows(t *testing.T) {
	runID := uuid.New()
	results := types.NewRoleResultSet()
	results.Set("백엔드 개발자", []types.PostingDoc{
		{ID: "1", Title: "A", URL: "https://jobs.test/Recruit/GI_Read/1"},
		{ID: "2", Title: "B", URL: "https://jobs.test/Recruit/GI_Read/2"},
	})
	results.Set("없는 직무", nil)
	results.Set("서버 개발자", []types.PostingDoc{
		{ID: "1", Title: types.NoTitle, URL: "https://jobs.test/Recruit/GI_Read/1"},
	})

	rows := postingRows(runID, results)
	require.Len(t, rows, 3)

	assert.Equal(t, "백엔드 개발자", rows[0].Role)
	assert.Equal(t, 0, rows[0].RoleIndex)
	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, 1, rows[1].Position)
	assert.Equal(t, "서버 개발자", rows[2].Role)
	assert.Equal(t, 2, rows[2].RoleIndex, "empty roles still take an index")
	assert.Equal(t, types.NoTitle, rows[2].Title)

	ids := map[uuid.UUID]bool{}
	for _, r := range rows {
		assert.Equal(t, runID, r.RunID)
		assert.NotEqual(t, uuid.Nil, r.ID)
		ids[r.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestPostingRows_Empty(t *testing.T) {
	assert.Empty(t, postingRows(uuid.New(), nil))
	assert.Empty(t, postingRows(uuid.New(), types.NewRoleResultSet()))
}

func TestAssembleResultSet_KeepsEmptyRoles(t *testing.T) {
	keywords := []string{"백엔드 개발자", "없는 직무", "서버 개발자"}
	postings := []CrawlPosting{
		{Role: "백엔드 개발자", PostingID: "1", Title: "A", URL: "https://jobs.test/Recruit/GI_Read/1"},
		{Role: "서버 개발자", PostingID: "3", Title: types.NoTitle, URL: "https://jobs.test/Recruit/GI_Read/3"},
		{Role: "백엔드 개발자", PostingID: "2", Title: "B", URL: "https://jobs.test/Recruit/GI_Read/2"},
	}

	set := assembleResultSet(keywords, postings)
	assert.Equal(t, keywords, set.Roles())
	assert.Equal(t, 3, set.Len())

	empty, ok := set.Get("없는 직무")
	require.True(t, ok, "role with no postings is still present")
	assert.Empty(t, empty)

	backend := set.Postings("백엔드 개발자")
	require.Len(t, backend, 2)
	assert.Equal(t, "1", backend[0].ID)
	assert.Equal(t, "2", backend[1].ID)
}

func TestAssembleResultSet_PostingRolesOutsideKeywords(t *testing.T) {
	set := assembleResultSet([]string{"QA", "QA"}, []CrawlPosting{
		{Role: "PM", PostingID: "9", Title: "P", URL: "https://jobs.test/Recruit/GI_Read/9"},
	})
	assert.Equal(t, []string{"QA", "PM"}, set.Roles())
	assert.Len(t, set.Postings("PM"), 1)

	assert.Zero(t, assembleResultSet(nil, nil).Len())
}

func TestMarshalOptional(t *testing.T) {
	b, err := marshalOptional(nil)
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = marshalOptional(map[string]string{"duty": "개발"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"duty":"개발"}`, string(b))
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS crawl_runs")
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS crawl_postings")
}
