package dialogue

import (
	"log/slog"

	"github.com/jonathan/job-scout/internal/types"
)

// Template is the static question used when the model's turn is unusable.
type Template struct {
	Label   string
	Ask     string
	Options []string
}

const fallbackAsk = "값을 입력해 주세요."

var fallbackOptions = []string{"무관", "모름"}

var templates = map[string]Template{
	types.FieldLocation: {
		Label:   "근무지역",
		Ask:     "근무 희망 지역을 선택/입력해 주세요. (예: 서울)",
		Options: []string{"서울", "경기", "인천", "부산", "대구", "광주", "대전", "세종", "울산", "무관", "모름"},
	},
	types.FieldEducation: {
		Label:   "학력",
		Ask:     "최종 학력을 선택해 주세요. (예: 대졸(4년))",
		Options: []string{"고졸", "초대졸", "대졸(4년)", "석사", "박사", "무관", "모름"},
	},
	types.FieldEmploymentType: {
		Label:   "고용형태",
		Ask:     "희망 고용형태를 선택해 주세요. (예: 정규직/계약직/인턴/무관)",
		Options: []string{"정규직", "계약직", "인턴", "무관", "모름"},
	},
	types.FieldCareerLevel: {
		Label:   "경력",
		Ask:     "경력 수준을 선택해 주세요. (예: 신입/경력/무관)",
		Options: []string{"신입", "경력", "무관", "모름"},
	},
	types.FieldSkills: {
		Label:   "기술 스택",
		Ask:     "사용 가능한 기술 스택을 입력해 주세요. (예: Python, SQL, PyTorch)",
		Options: []string{"Python", "SQL", "PyTorch", "TensorFlow", "Docker", "AWS", "모름"},
	},
	types.FieldIndustry: {
		Label:   "산업",
		Ask:     "관심 산업을 선택/입력해 주세요. (예: IT/인터넷)",
		Options: []string{"IT/인터넷", "제조/생산", "금융/은행", "공공/기관", "교육", "모름"},
	},
	types.FieldCompanyTypes: {
		Label:   "기업형태",
		Ask:     "선호 기업형태를 선택해 주세요. (예: 대기업/스타트업)",
		Options: []string{"대기업", "중견기업", "중소기업", "외국계", "공공기관", "스타트업"},
	},
	types.FieldJobLevels: {
		Label:   "직급",
		Ask:     "희망 직급을 선택해 주세요. (예: 사원/대리/과장)",
		Options: []string{"사원", "대리", "과장", "차장", "부장", "무관"},
	},
	types.FieldSalaryBrackets: {
		Label:   "연봉 구간",
		Ask:     "희망 연봉 구간을 선택해 주세요. (예: 4000만-5000만)",
		Options: []string{"3000만 이하", "3000만-4000만", "4000만-5000만", "5000만 이상", "모름"},
	},
	types.FieldPrefConditions: {
		Label:   "선호 조건",
		Ask:     "선호하는 근무 조건을 선택해 주세요. (예: 재택근무/유연근무)",
		Options: []string{"재택근무", "유연근무", "스톡옵션", "수평문화", "교육지원", "모름"},
	},
	types.FieldBenefits: {
		Label:   "복리후생",
		Ask:     "중요하게 생각하는 복리후생을 선택해 주세요. (예: 식대제공/복지포인트)",
		Options: []string{"식대제공", "법인카드", "통신비지원", "복지포인트", "단체상해보험", "모름"},
	},
	types.FieldKeywords: {
		Label:   "키워드",
		Ask:     "검색에 반영할 키워드를 입력해 주세요. (예: 추천, 이상탐지, NLP)",
		Options: []string{"추천", "이상탐지", "보안", "NLP", "CV", "LLM", "모름"},
	},
	types.FieldMajor: {
		Label:   "전공",
		Ask:     "전공을 입력해 주세요. (예: 컴퓨터공학)",
		Options: []string{"컴퓨터공학", "산업공학", "통계학", "수학", "전자공학", "모름"},
	},
	types.FieldCertifications: {
		Label:   "자격증",
		Ask:     "보유 자격증을 입력/선택해 주세요. (예: 정보처리기사, SQLD)",
		Options: []string{"정보처리기사", "SQLD", "ADsP", "빅분기", "TOEIC", "OPIC", "모름"},
	},
}

// TemplateFor returns the static template for a field, or a generic one.
func TemplateFor(field string) Template {
	if tpl, ok := templates[field]; ok {
		return tpl
	}
	return Template{Label: field, Ask: fallbackAsk, Options: fallbackOptions}
}

// FieldLabel returns the user-facing label for a field.
func FieldLabel(field string) string {
	return TemplateFor(field).Label
}

// DefaultTurn builds the template-based turn for a field.
func DefaultTurn(field string) types.AskTurn {
	tpl := TemplateFor(field)
	turn, err := types.NewAskTurn(field, tpl.Ask, tpl.Options)
	if err != nil {
		// Only an empty field name fails validation.
		slog.Default().Warn("invalid default turn", "field", field, "error", err)
		return types.AskTurn{Field: field, Ask: tpl.Ask, Options: types.DedupOptions(tpl.Options)}
	}
	return turn
}
