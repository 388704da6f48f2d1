package crawling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromMarkup(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og:title wins",
			html: `<html><head><title>페이지</title><meta property="og:title" content=" [카카오] 서버 개발자 "></head>
				<body><h1>헤더</h1></body></html>`,
			want: "[카카오] 서버 개발자",
		},
		{
			name: "h1 when og:title is blank",
			html: `<html><head><meta property="og:title" content="  "><title>페이지</title></head>
				<body><h1> 데이터 <span>엔지니어</span></h1></body></html>`,
			want: "데이터 엔지니어",
		},
		{
			name: "title element last",
			html: `<html><head><title>
				백엔드 채용
			</title></head><body></body></html>`,
			want: "백엔드 채용",
		},
		{
			name: "nothing",
			html: `<html><body><div class="tit">Engineer Wanted</div></body></html>`,
			want: "",
		},
		{
			name: "empty",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromMarkup(tt.html))
		})
	}
}
