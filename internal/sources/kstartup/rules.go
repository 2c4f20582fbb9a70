package kstartup

import "github.com/agentstation/grantmap/pkg/sources"

// Item is one entry of the odcloud data array. The camelCase fields are the
// names of the older XML-era gateway, read as fallbacks.
type Item struct {
	PbancSn             sources.Text `json:"pbanc_sn"`
	BizPbancNm          sources.Text `json:"biz_pbanc_nm"`
	PbancCtnt           sources.Text `json:"pbanc_ctnt"`
	SuptBizClsfc        sources.Text `json:"supt_biz_clsfc"`
	SuptRegin           sources.Text `json:"supt_regin"`
	AplyTrgtCtnt        sources.Text `json:"aply_trgt_ctnt"`
	AplyTrgt            sources.Text `json:"aply_trgt"`
	PbancNtrpNm         sources.Text `json:"pbanc_ntrp_nm"`
	SprvInst            sources.Text `json:"sprv_inst"`
	PbancRcptBgngDt     sources.Text `json:"pbanc_rcpt_bgng_dt"`
	PbancRcptEndDt      sources.Text `json:"pbanc_rcpt_end_dt"`
	DetlPgURL           sources.Text `json:"detl_pg_url"`
	BizAplyURL          sources.Text `json:"biz_aply_url"`
	AplyMthdOnliRcptIst sources.Text `json:"aply_mthd_onli_rcpt_istc"`
	RcrtPrgsYn          sources.Text `json:"rcrt_prgs_yn"`

	BizID           sources.Text `json:"bizId"`
	BizNm           sources.Text `json:"bizNm"`
	BizCn           sources.Text `json:"bizCn"`
	PldirSportRealm sources.Text `json:"pldirSportRealm"`
	Region          sources.Text `json:"region"`
	AdmsDeptNm      sources.Text `json:"admsDeptNm"`
	SprtTrgtNm      sources.Text `json:"sprtTrgtNm"`
	DtlURL          sources.Text `json:"dtlUrl"`
	Summary         sources.Text `json:"summary"`
	AmountMin       sources.Text `json:"amountMin"`
	AmountMax       sources.Text `json:"amountMax"`
}

type listResponse struct {
	CurrentCount sources.Text `json:"currentCount"`
	MatchCount   sources.Text `json:"matchCount"`
	Page         sources.Text `json:"page"`
	PerPage      sources.Text `json:"perPage"`
	TotalCount   sources.Text `json:"totalCount"`
	Data         *[]Item      `json:"data"`
}

// Rules is the field priority list for K-Startup items.
var Rules = sources.Mapping[Item]{
	sources.FieldID: {
		{Upstream: "pbanc_sn", Get: func(i Item) sources.Text { return i.PbancSn }},
		{Upstream: "bizId", Get: func(i Item) sources.Text { return i.BizID }},
	},
	sources.FieldTitle: {
		{Upstream: "biz_pbanc_nm", Get: func(i Item) sources.Text { return i.BizPbancNm }},
		{Upstream: "bizNm", Get: func(i Item) sources.Text { return i.BizNm }},
	},
	sources.FieldSummary: {
		{Upstream: "summary", Get: func(i Item) sources.Text { return i.Summary }},
	},
	sources.FieldDescription: {
		{Upstream: "pbanc_ctnt", Get: func(i Item) sources.Text { return i.PbancCtnt }},
		{Upstream: "bizCn", Get: func(i Item) sources.Text { return i.BizCn }},
	},
	sources.FieldCategory: {
		{Upstream: "supt_biz_clsfc", Get: func(i Item) sources.Text { return i.SuptBizClsfc }},
		{Upstream: "pldirSportRealm", Get: func(i Item) sources.Text { return i.PldirSportRealm }},
	},
	sources.FieldRegion: {
		{Upstream: "supt_regin", Get: func(i Item) sources.Text { return i.SuptRegin }},
		{Upstream: "region", Get: func(i Item) sources.Text { return i.Region }},
	},
	sources.FieldTarget: {
		{Upstream: "aply_trgt_ctnt", Get: func(i Item) sources.Text { return i.AplyTrgtCtnt }},
		{Upstream: "aply_trgt", Get: func(i Item) sources.Text { return i.AplyTrgt }},
		{Upstream: "sprtTrgtNm", Get: func(i Item) sources.Text { return i.SprtTrgtNm }},
	},
	sources.FieldMethod: {
		{Upstream: "aply_mthd_onli_rcpt_istc", Get: func(i Item) sources.Text { return i.AplyMthdOnliRcptIst }},
	},
	sources.FieldOrganizer: {
		{Upstream: "pbanc_ntrp_nm", Get: func(i Item) sources.Text { return i.PbancNtrpNm }},
		{Upstream: "sprv_inst", Get: func(i Item) sources.Text { return i.SprvInst }},
		{Upstream: "admsDeptNm", Get: func(i Item) sources.Text { return i.AdmsDeptNm }},
	},
	sources.FieldURL: {
		{Upstream: "detl_pg_url", Get: func(i Item) sources.Text { return i.DetlPgURL }},
		{Upstream: "biz_aply_url", Get: func(i Item) sources.Text { return i.BizAplyURL }},
		{Upstream: "dtlUrl", Get: func(i Item) sources.Text { return i.DtlURL }},
	},
	sources.FieldStartDate: {
		{Upstream: "pbanc_rcpt_bgng_dt", Get: func(i Item) sources.Text { return i.PbancRcptBgngDt }},
	},
	sources.FieldEndDate: {
		{Upstream: "pbanc_rcpt_end_dt", Get: func(i Item) sources.Text { return i.PbancRcptEndDt }},
	},
	sources.FieldStatus: {
		{Upstream: "rcrt_prgs_yn", Get: func(i Item) sources.Text { return i.RcrtPrgsYn }},
	},
	sources.FieldAmountMin: {
		{Upstream: "amountMin", Get: func(i Item) sources.Text { return i.AmountMin }},
	},
	sources.FieldAmountMax: {
		{Upstream: "amountMax", Get: func(i Item) sources.Text { return i.AmountMax }},
	},
}
