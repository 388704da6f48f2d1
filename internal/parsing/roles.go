package parsing

import "strings"

// skillToRole maps a lower-cased skill to the representative role it implies.
var skillToRole = map[string]string{
	// backend / platform
	"python":   "백엔드 개발자",
	"django":   "백엔드 개발자",
	"fastapi":  "백엔드 개발자",
	"spring":   "백엔드 개발자",
	"node":     "백엔드 개발자",
	"go":       "백엔드 개발자",
	"kotlin":   "백엔드 개발자",
	"kafka":    "백엔드 개발자",
	"redis":    "백엔드 개발자",
	"mysql":    "백엔드 개발자",
	"postgres": "백엔드 개발자",

	// frontend
	"react":      "프론트엔드 개발자",
	"vue":        "프론트엔드 개발자",
	"typescript": "프론트엔드 개발자",
	"next.js":    "프론트엔드 개발자",

	// mobile
	"android":      "모바일 앱 개발자",
	"ios":          "모바일 앱 개발자",
	"swift":        "모바일 앱 개발자",
	"flutter":      "모바일 앱 개발자",
	"react native": "모바일 앱 개발자",

	// data / AI
	"sql":              "데이터 분석가",
	"pandas":           "데이터 분석가",
	"spark":            "데이터 엔지니어",
	"airflow":          "데이터 엔지니어",
	"etl":              "데이터 엔지니어",
	"ml":               "머신러닝 엔지니어",
	"mle":              "머신러닝 엔지니어",
	"machine learning": "머신러닝 엔지니어",
	"deep learning":    "딥러닝 엔지니어",
	"pytorch":          "딥러닝 엔지니어",
	"tensorflow":       "딥러닝 엔지니어",
	"nlp":              "nlp 엔지니어",
	"llm":              "ai 엔지니어",
	"cv":               "컴퓨터비전 엔지니어",
	"computer vision":  "컴퓨터비전 엔지니어",
	"ds":               "데이터 사이언티스트",
	"data scientist":   "데이터 사이언티스트",

	// devops / cloud
	"aws":        "데브옵스 엔지니어",
	"gcp":        "데브옵스 엔지니어",
	"azure":      "데브옵스 엔지니어",
	"docker":     "데브옵스 엔지니어",
	"kubernetes": "데브옵스 엔지니어",
	"terraform":  "데브옵스 엔지니어",
	"cicd":       "데브옵스 엔지니어",

	// security / QA
	"security": "보안 엔지니어",
	"pentest":  "보안 엔지니어",
	"qa":       "qa 엔지니어",
}

// skillAliases folds common spelling variants onto the keys of skillToRole.
var skillAliases = map[string]string{
	"golang":      "go",
	"go lang":     "go",
	"nodejs":      "node",
	"node.js":     "node",
	"reactjs":     "react",
	"react.js":    "react",
	"vuejs":       "vue",
	"vue.js":      "vue",
	"ts":          "typescript",
	"nextjs":      "next.js",
	"k8s":         "kubernetes",
	"postgresql":  "postgres",
	"ci/cd":       "cicd",
	"파이썬":         "python",
	"스프링":         "spring",
	"머신러닝":        "machine learning",
	"딥러닝":         "deep learning",
	"springboot":  "spring",
	"spring boot": "spring",
}

// roleAliases maps role label variants to the representative role.
var roleAliases = map[string]string{
	"백엔드":       "백엔드 개발자",
	"backend":   "백엔드 개발자",
	"서버개발":      "백엔드 개발자",
	"플랫폼":       "백엔드 개발자",
	"프론트":       "프론트엔드 개발자",
	"frontend":  "프론트엔드 개발자",
	"웹퍼블리셔":     "프론트엔드 개발자",
	"앱":         "모바일 앱 개발자",
	"ios개발":     "모바일 앱 개발자",
	"android개발": "모바일 앱 개발자",
	"데이터엔지니어":   "데이터 엔지니어",
	"데이터분석":     "데이터 분석가",
	"데이터사이언티스트": "데이터 사이언티스트",
	"머신러닝":      "머신러닝 엔지니어",
	"딥러닝":       "딥러닝 엔지니어",
	"ai":        "ai 엔지니어",
	"mlops":     "데브옵스 엔지니어",
	"devops":    "데브옵스 엔지니어",
	"보안":        "보안 엔지니어",
	"qa테스터":     "qa 엔지니어",
}

// CanonicalRole maps a role alias to its representative label.
// Unknown roles are returned trimmed; empty input returns "".
func CanonicalRole(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := roleAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// NormalizeSkillName folds a skill onto its canonical lower-case key.
func NormalizeSkillName(skill string) string {
	key := strings.ToLower(strings.TrimSpace(skill))
	if alias, ok := skillAliases[key]; ok {
		return alias
	}
	return key
}

// RoleFromSkills returns the role implied by the first skill that maps to one,
// or "" when none does.
func RoleFromSkills(skills []string) string {
	for _, s := range skills {
		key := NormalizeSkillName(s)
		if key == "" {
			continue
		}
		if role, ok := skillToRole[key]; ok {
			return role
		}
	}
	return ""
}
