package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	out      string
	err      error
	messages []llm.Message
}

func (s *stubCompleter) Complete(_ context.Context, messages []llm.Message, _ *float64) (string, error) {
	s.messages = messages
	return s.out, s.err
}

func TestParseSpec(t *testing.T) {
	stub := &stubCompleter{out: "```json\n" + `{
		"role": "backend",
		"skills": ["Python", " python ", "SQL"],
		"certifications": ["정보처리기사"],
		"major": "통계학",
		"career": {"level": "신입", "years": null},
		"location": " 서울 ",
		"employment_type": null,
		"education": "대졸(4년)",
		"keywords": []
	}` + "\n```"}

	spec, err := ParseSpec(context.Background(), stub, "서울 거주 신입, 파이썬/SQL 가능")
	require.NoError(t, err)

	assert.Equal(t, "백엔드 개발자", spec.Role)
	assert.Equal(t, []string{"Python", "SQL"}, spec.Skills)
	assert.Equal(t, "서울", spec.Location)
	assert.Equal(t, "신입", spec.Career.Level)
	assert.Equal(t, "", spec.EmploymentType)
	assert.Equal(t, "대졸(4년)", spec.Education)
	assert.Nil(t, spec.Keywords)

	require.Len(t, stub.messages, 2)
	assert.Equal(t, llm.RoleSystem, stub.messages[0].Role)
	assert.Equal(t, "서울 거주 신입, 파이썬/SQL 가능", stub.messages[1].Content)
}

func TestParseSpec_RoleFromSkills(t *testing.T) {
	stub := &stubCompleter{out: `{"skills": ["엑셀", "pandas"]}`}

	spec, err := ParseSpec(context.Background(), stub, "엑셀, 판다스")
	require.NoError(t, err)
	assert.Equal(t, "데이터 분석가", spec.Role)
}

func TestParseSpec_GarbageYieldsEmptySpec(t *testing.T) {
	stub := &stubCompleter{out: "죄송합니다, 이해하지 못했습니다."}

	spec, err := ParseSpec(context.Background(), stub, "???")
	require.NoError(t, err)
	assert.Equal(t, types.Spec{}, spec)
}

func TestParseSpec_ArrayOutputYieldsEmptySpec(t *testing.T) {
	stub := &stubCompleter{out: `["서울"]`}

	spec, err := ParseSpec(context.Background(), stub, "서울")
	require.NoError(t, err)
	assert.Equal(t, types.Spec{}, spec)
}

func TestParseSpec_DropsInvalidFields(t *testing.T) {
	stub := &stubCompleter{out: `{"location": ["서울", "부산"], "skills": "Go", "major": "컴퓨터공학"}`}

	spec, err := ParseSpec(context.Background(), stub, "text")
	require.NoError(t, err)
	assert.Equal(t, "", spec.Location)
	assert.Nil(t, spec.Skills)
	assert.Equal(t, "컴퓨터공학", spec.Major)
}

func TestParseSpec_PropagatesGatewayErrors(t *testing.T) {
	backendErr := &llm.BackendError{Status: 500, Message: "boom"}
	_, err := ParseSpec(context.Background(), &stubCompleter{err: backendErr}, "text")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	var gotBackend *llm.BackendError
	require.ErrorAs(t, err, &gotBackend)
	assert.Equal(t, 500, gotBackend.Status)

	_, err = ParseSpec(context.Background(), &stubCompleter{err: &llm.ConfigError{Message: "no key"}}, "text")
	var cfgErr *llm.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}
