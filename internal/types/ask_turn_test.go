//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAskTurn(t *testing.T) {
	turn, err := NewAskTurn("location", "희망 근무지역은 어디인가요?\n추가 설명", []string{"서울", "서울", "무관", "모름", "경기"})
	require.NoError(t, err)

	assert.Equal(t, "location", turn.Field)
	assert.Equal(t, "희망 근무지역은 어디인가요?", turn.Ask)
	assert.Equal(t, []string{"서울", "무관", "경기"}, turn.Options)
}

func TestNewAskTurn_CapsOptions(t *testing.T) {
	turn, err := NewAskTurn("skills", "기술은?", []string{"a", "b", "c", "d", "e", "f", "g", "h"})
	require.NoError(t, err)
	assert.Len(t, turn.Options, MaxAskOptions)
}

func TestNewAskTurn_CapKeepsUnspecified(t *testing.T) {
	opts := []string{"서울", "경기", "인천", "부산", "대구", "광주", "대전", "세종", "울산", "무관", "모름"}
	turn, err := NewAskTurn("location", "지역?", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"서울", "경기", "인천", "부산", "대구", "무관"}, turn.Options)
}

func TestNewAskTurn_Invalid(t *testing.T) {
	_, err := NewAskTurn("", "질문", nil)
	assert.Error(t, err)

	_, err = NewAskTurn("location", "  \n ", nil)
	assert.Error(t, err)
}

func TestDedupOptions_KeepsFirstUnspecifiedSpelling(t *testing.T) {
	assert.Equal(t, []string{"모름", "신입"}, DedupOptions([]string{"모름", "신입", "무관", " "}))
	assert.Empty(t, DedupOptions(nil))
}

func TestRoleResultSet_OrderAndJSON(t *testing.T) {
	set := NewRoleResultSet()
	set.Set("백엔드", []PostingDoc{{ID: "1", Title: "A", URL: "u1"}})
	set.Set("데이터", nil)
	set.Set("백엔드", []PostingDoc{{ID: "2", Title: "B", URL: "u2"}})

	assert.Equal(t, []string{"백엔드", "데이터"}, set.Roles())
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 1, set.Total())

	docs, ok := set.Get("데이터")
	require.True(t, ok)
	assert.Empty(t, docs)

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{"백엔드":[{"gi_no":"2","title":"B","url":"u2","jd_text":""}],"데이터":[]}`, string(data))
	assert.Less(t, strings.Index(string(data), "백엔드"), strings.Index(string(data), "데이터"))
}
