package mapping

import (
	"strings"
	"testing"

	"github.com/jonathan/job-scout/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBuildQueryText(t *testing.T) {
	spec := types.Spec{
		Role:      "백엔드 개발자",
		Keywords:  []string{"핀테크", "아주 긴 키워드는 스물한 글자를 넘어서 제외됩니다"},
		Skills:    []string{"Go", "Python", "Spring Boot", "SQL"},
		Major:     "컴퓨터공학",
		Location:  "서울",
		Education: "무관",
	}
	applied := &types.AppliedFilters{ExpandedRoles: []string{"서버 개발자", "백엔드 개발자"}}

	q := BuildQueryText(spec, applied)

	assert.True(t, strings.HasPrefix(q, `서버 개발자 백엔드 개발자 핀테크 Go "Python" "Spring Boot" 컴퓨터공학 서울 -콜센터`), q)
	assert.NotContains(t, q, "SQL")
	assert.NotContains(t, q, "무관")
	assert.NotContains(t, q, "스물한")
	assert.True(t, strings.HasSuffix(q, "-교사 -튜터"))
}

func TestBuildQueryText_RoleTermLimit(t *testing.T) {
	applied := &types.AppliedFilters{ExpandedRoles: []string{"a", "b", "c", "d", "e", "f"}}
	q := BuildQueryText(types.Spec{Education: "석사"}, applied)

	assert.True(t, strings.HasPrefix(q, "a b c d e 석사 -콜센터"), q)
}

func TestBuildQueryText_Empty(t *testing.T) {
	q := BuildQueryText(types.Spec{}, nil)
	assert.True(t, strings.HasPrefix(q, "-콜센터 -상담"))
	assert.Len(t, strings.Fields(q), len(NegativeHints))
}
