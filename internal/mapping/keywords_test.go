package mapping

import (
	"context"
	"testing"

	"github.com/jonathan/job-scout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractProjectKeywords_Local(t *testing.T) {
	mapper := NewMapper(nil, nil)
	text := "Python과 PyTorch로 추천 시스템을 만들었고, Docker/Kubernetes로 배포. C++ 최적화. 데이터 엔지니어 역할. MongoDB와 Google Cloud 사용."

	got, err := mapper.ExtractProjectKeywords(context.Background(), text, KeywordSourceLocal)
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "c++", "pytorch", "docker", "kubernetes"}, got.Skills)
	assert.Equal(t, []string{"데이터 엔지니어"}, got.Roles)
	assert.Equal(t, []string{"추천"}, got.Domains)
	assert.NotContains(t, got.Skills, "go", "go must not match inside other words")
}

func TestExtractProjectKeywords_LocalGoProse(t *testing.T) {
	mapper := NewMapper(nil, nil)

	got, err := mapper.ExtractProjectKeywords(context.Background(),
		"We will go live soon. Ready to go with the new API.", KeywordSourceLocal)
	require.NoError(t, err)
	assert.Empty(t, got.Skills, "the English verb is not a skill")

	got, err = mapper.ExtractProjectKeywords(context.Background(),
		"Golang 마이크로서비스와 Redis 캐시. Go-to 전략 문서.", KeywordSourceLocal)
	require.NoError(t, err)
	assert.Equal(t, []string{"redis", "golang"}, got.Skills)
}

func TestExtractProjectKeywords_LLM(t *testing.T) {
	stub := &stubCompleter{out: `{"roles":["Data Scientist","data scientist"],"skills":["Python","PyTorch","MLflow"],"domains":["추천시스템"]}`}
	mapper := NewMapper(stub, nil)

	got, err := mapper.ExtractProjectKeywords(context.Background(), "추천 모델 개발", KeywordSourceLLM)
	require.NoError(t, err)

	assert.Equal(t, types.ProjectKeywords{
		Roles:   []string{"data scientist"},
		Skills:  []string{"python", "pytorch", "mlflow"},
		Domains: []string{"추천시스템"},
	}, got)
}

func TestExtractProjectKeywords_LLMGarbage(t *testing.T) {
	stub := &stubCompleter{out: "none"}
	got, err := NewMapper(stub, nil).ExtractProjectKeywords(context.Background(), "text", "")
	require.NoError(t, err)
	assert.Empty(t, got.Roles)
	assert.NotNil(t, got.Skills)
}

func TestExtractProjectKeywords_EmptyText(t *testing.T) {
	stub := &stubCompleter{out: "{}"}
	got, err := NewMapper(stub, nil).ExtractProjectKeywords(context.Background(), "  ", KeywordSourceLLM)
	require.NoError(t, err)
	assert.Empty(t, got.Skills)
	assert.Empty(t, stub.calls)
}

func TestExtractProjectKeywords_UnknownSource(t *testing.T) {
	_, err := NewMapper(nil, nil).ExtractProjectKeywords(context.Background(), "text", "magic")
	assert.Error(t, err)
}
