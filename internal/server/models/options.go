package models

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var StatusOptions = []Option{
	{Value: "undergraduate", Label: "대학생"},
	{Value: "graduate", Label: "대학원생"},
	{Value: "employee", Label: "직장인"},
	{Value: "entrepreneur", Label: "창업가"},
	{Value: "researcher", Label: "연구원"},
	{Value: "freelancer", Label: "프리랜서"},
	{Value: "other", Label: "기타"},
}

var ContactPreferenceOptions = []Option{
	{Value: "email", Label: "이메일"},
	{Value: "linkedin", Label: "LinkedIn"},
	{Value: "kakao", Label: "카카오톡"},
	{Value: "none", Label: "비공개"},
}

var LookingForOptions = []Option{
	{Value: "mentor", Label: "멘토 찾기"},
	{Value: "mentee", Label: "멘티 찾기"},
	{Value: "collaboration", Label: "협업 파트너"},
	{Value: "info-exchange", Label: "정보 교류"},
	{Value: "networking", Label: "네트워킹"},
	{Value: "none", Label: "특별히 없음"},
}
