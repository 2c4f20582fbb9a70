package bizinfo

import "github.com/agentstation/grantmap/pkg/sources"

// Item is one entry of the jsonArray envelope. The camelCase names after
// the first block are the pre-2024 field names, read as fallbacks.
type Item struct {
	PblancID                   sources.Text `json:"pblancId"`
	PblancNm                   sources.Text `json:"pblancNm"`
	BsnsSumryCn                sources.Text `json:"bsnsSumryCn"`
	PldirSportRealmLclasCodeNm sources.Text `json:"pldirSportRealmLclasCodeNm"`
	PldirSportRealmMlsfcCodeNm sources.Text `json:"pldirSportRealmMlsfcCodeNm"`
	JrsdInsttNm                sources.Text `json:"jrsdInsttNm"`
	ExcInsttNm                 sources.Text `json:"excInsttNm"`
	TrgetNm                    sources.Text `json:"trgetNm"`
	ReqstMthPapersCn           sources.Text `json:"reqstMthPapersCn"`
	ReqstBeginEndDe            sources.Text `json:"reqstBeginEndDe"`
	PblancURL                  sources.Text `json:"pblancUrl"`
	HashTags                   sources.Text `json:"hashtags"`
	InqireCo                   sources.Text `json:"inqireCo"`
	CreatPnttm                 sources.Text `json:"creatPnttm"`

	PolicyID   sources.Text `json:"policyId"`
	PolicyNm   sources.Text `json:"policyNm"`
	PolicyCn   sources.Text `json:"policyCn"`
	PolicyFld  sources.Text `json:"policyFld"`
	PolicyRgn  sources.Text `json:"policyRgn"`
	PolicyURL  sources.Text `json:"policyUrl"`
	SprtTrgtNm sources.Text `json:"sprtTrgtNm"`
	Summary    sources.Text `json:"summary"`
	StartDate  sources.Text `json:"startDate"`
	EndDate    sources.Text `json:"endDate"`
	AmountMin  sources.Text `json:"amountMin"`
	AmountMax  sources.Text `json:"amountMax"`
}

type listResponse struct {
	JSONArray *[]Item `json:"jsonArray"`
}

// Rules is the field priority list for bizinfo items.
var Rules = sources.Mapping[Item]{
	sources.FieldID: {
		{Upstream: "pblancId", Get: func(i Item) sources.Text { return i.PblancID }},
		{Upstream: "policyId", Get: func(i Item) sources.Text { return i.PolicyID }},
	},
	sources.FieldTitle: {
		{Upstream: "pblancNm", Get: func(i Item) sources.Text { return i.PblancNm }},
		{Upstream: "policyNm", Get: func(i Item) sources.Text { return i.PolicyNm }},
	},
	sources.FieldSummary: {
		{Upstream: "summary", Get: func(i Item) sources.Text { return i.Summary }},
	},
	sources.FieldDescription: {
		{Upstream: "bsnsSumryCn", Get: func(i Item) sources.Text { return i.BsnsSumryCn }},
		{Upstream: "policyCn", Get: func(i Item) sources.Text { return i.PolicyCn }},
	},
	sources.FieldCategory: {
		{Upstream: "pldirSportRealmLclasCodeNm", Get: func(i Item) sources.Text { return i.PldirSportRealmLclasCodeNm }},
		{Upstream: "pldirSportRealmMlsfcCodeNm", Get: func(i Item) sources.Text { return i.PldirSportRealmMlsfcCodeNm }},
		{Upstream: "policyFld", Get: func(i Item) sources.Text { return i.PolicyFld }},
	},
	sources.FieldRegion: {
		{Upstream: "policyRgn", Get: func(i Item) sources.Text { return i.PolicyRgn }},
	},
	sources.FieldTarget: {
		{Upstream: "trgetNm", Get: func(i Item) sources.Text { return i.TrgetNm }},
		{Upstream: "sprtTrgtNm", Get: func(i Item) sources.Text { return i.SprtTrgtNm }},
	},
	sources.FieldMethod: {
		{Upstream: "reqstMthPapersCn", Get: func(i Item) sources.Text { return i.ReqstMthPapersCn }},
	},
	sources.FieldOrganizer: {
		{Upstream: "jrsdInsttNm", Get: func(i Item) sources.Text { return i.JrsdInsttNm }},
		{Upstream: "excInsttNm", Get: func(i Item) sources.Text { return i.ExcInsttNm }},
	},
	sources.FieldURL: {
		{Upstream: "pblancUrl", Get: func(i Item) sources.Text { return i.PblancURL }},
		{Upstream: "policyUrl", Get: func(i Item) sources.Text { return i.PolicyURL }},
	},
	sources.FieldPeriod: {
		{Upstream: "reqstBeginEndDe", Get: func(i Item) sources.Text { return i.ReqstBeginEndDe }},
	},
	sources.FieldStartDate: {
		{Upstream: "startDate", Get: func(i Item) sources.Text { return i.StartDate }},
	},
	sources.FieldEndDate: {
		{Upstream: "endDate", Get: func(i Item) sources.Text { return i.EndDate }},
	},
	sources.FieldAmountMin: {
		{Upstream: "amountMin", Get: func(i Item) sources.Text { return i.AmountMin }},
	},
	sources.FieldAmountMax: {
		{Upstream: "amountMax", Get: func(i Item) sources.Text { return i.AmountMax }},
	},
	sources.FieldViewCount: {
		{Upstream: "inqireCo", Get: func(i Item) sources.Text { return i.InqireCo }},
	},
}
