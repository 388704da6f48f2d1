package mapping

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/prompts"
	"github.com/jonathan/job-scout/internal/types"
)

// KeywordSource selects how project keywords are extracted.
type KeywordSource string

const (
	// KeywordSourceLLM asks the model.
	KeywordSourceLLM KeywordSource = "llm"
	// KeywordSourceLocal matches built-in lexicons without any network call.
	KeywordSourceLocal KeywordSource = "local"
)

// Result caps for extracted project keywords.
const (
	MaxProjectRoles   = 5
	MaxProjectSkills  = 12
	MaxProjectDomains = 8
)

var skillLexicon = []string{
	"python", "java", "c++", "sql", "pytorch", "tensorflow", "scikit-learn", "pandas", "numpy",
	"spark", "hadoop", "kafka", "docker", "kubernetes", "aws", "gcp", "azure", "django", "flask",
	"fastapi", "react", "node", "git", "mlflow", "airflow", "redis", "elasticsearch", "rabbitmq",
	"postgres", "mysql", "streamlit", "beautifulsoup", "golang",
}

var roleLexicon = []string{
	"백엔드 개발자", "프론트엔드 개발자", "데이터 엔지니어", "데이터 사이언티스트",
	"ml 엔지니어", "ai 엔지니어", "딥러닝 엔지니어", "머신러닝 엔지니어", "소프트웨어 개발자",
}

var domainLexicon = []string{
	"자연어처리", "nlp", "컴퓨터비전", "recommendation", "추천", "시계열",
	"anomaly", "보안", "핀테크", "커머스", "광고", "검색",
}

// skillPatterns match lexicon entries on ASCII word boundaries; symbols such as
// "c++" count as part of the word.
var skillPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(skillLexicon))
	for i, w := range skillLexicon {
		out[i] = regexp.MustCompile(`(^|[^a-z0-9_+#.-])` + regexp.QuoteMeta(w) + `($|[^a-z0-9_+#-])`)
	}
	return out
}()

// ExtractProjectKeywords pulls role, skill and domain keywords from a project
// description. Results are lower-cased, deduplicated and capped.
func (m *Mapper) ExtractProjectKeywords(ctx context.Context, text string, source KeywordSource) (types.ProjectKeywords, error) {
	empty := types.ProjectKeywords{Roles: []string{}, Skills: []string{}, Domains: []string{}}
	if strings.TrimSpace(text) == "" {
		return empty, nil
	}

	switch source {
	case KeywordSourceLocal:
		return localKeywords(text), nil
	case KeywordSourceLLM, "":
	default:
		return empty, fmt.Errorf("unknown keyword source %q", source)
	}

	out, err := m.completer.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.Must(prompts.ProjectKeywords)},
		{Role: llm.RoleUser, Content: text},
	}, nil)
	if err != nil {
		return empty, err
	}

	raw := llm.DecodeJSON(out, types.ProjectKeywords{})
	return types.ProjectKeywords{
		Roles:   lowerUniq(raw.Roles, MaxProjectRoles),
		Skills:  lowerUniq(raw.Skills, MaxProjectSkills),
		Domains: lowerUniq(raw.Domains, MaxProjectDomains),
	}, nil
}

func localKeywords(text string) types.ProjectKeywords {
	lower := strings.ToLower(text)

	var skills, roles, domains []string
	for i, re := range skillPatterns {
		if re.MatchString(lower) {
			skills = append(skills, skillLexicon[i])
		}
	}
	for _, r := range roleLexicon {
		if strings.Contains(lower, r) {
			roles = append(roles, r)
		}
	}
	for _, d := range domainLexicon {
		if strings.Contains(lower, d) {
			domains = append(domains, d)
		}
	}

	return types.ProjectKeywords{
		Roles:   nonNil(uniqKeep(roles, MaxProjectRoles)),
		Skills:  nonNil(uniqKeep(skills, MaxProjectSkills)),
		Domains: nonNil(uniqKeep(domains, MaxProjectDomains)),
	}
}

func lowerUniq(seq []string, limit int) []string {
	lowered := make([]string, len(seq))
	for i, s := range seq {
		lowered[i] = strings.ToLower(s)
	}
	return nonNil(uniqKeep(lowered, limit))
}
