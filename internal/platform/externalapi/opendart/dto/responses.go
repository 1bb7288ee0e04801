// Package dto defines data transfer objects for the OpenDART API responses.
package dto

import "encoding/xml"

// StatusResponse はエラー時に返されるXML/JSONの共通部分です。
type StatusResponse struct {
	XMLName xml.Name `xml:"result" json:"-"`
	Status  string   `xml:"status" json:"status"`
	Message string   `xml:"message" json:"message"`
}

// CorpCodeResult は CORPCODE.xml のルート要素です。
type CorpCodeResult struct {
	XMLName xml.Name   `xml:"result"`
	List    []CorpCode `xml:"list"`
}

// CorpCode は CORPCODE.xml の1法人です。
type CorpCode struct {
	CorpCode    string `xml:"corp_code"`
	CorpName    string `xml:"corp_name"`
	CorpEngName string `xml:"corp_eng_name"`
	StockCode   string `xml:"stock_code"`
	ModifyDate  string `xml:"modify_date"`
}

// SingleAccountResponse は fnlttSinglAcnt.json のレスポンスです。
type SingleAccountResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	List    []SingleAccount `json:"list"`
}

// SingleAccount は주요계정の1行です。
type SingleAccount struct {
	RceptNo         string `json:"rcept_no"`
	BsnsYear        string `json:"bsns_year"`
	CorpCode        string `json:"corp_code"`
	StockCode       string `json:"stock_code"`
	ReprtCode       string `json:"reprt_code"`
	AccountNm       string `json:"account_nm"`
	FsDiv           string `json:"fs_div"`
	FsNm            string `json:"fs_nm"`
	SjDiv           string `json:"sj_div"`
	SjNm            string `json:"sj_nm"`
	ThstrmNm        string `json:"thstrm_nm"`
	ThstrmDt        string `json:"thstrm_dt"`
	ThstrmAmount    string `json:"thstrm_amount"`
	FrmtrmNm        string `json:"frmtrm_nm"`
	FrmtrmDt        string `json:"frmtrm_dt"`
	FrmtrmAmount    string `json:"frmtrm_amount"`
	BfefrmtrmNm     string `json:"bfefrmtrm_nm"`
	BfefrmtrmDt     string `json:"bfefrmtrm_dt"`
	BfefrmtrmAmount string `json:"bfefrmtrm_amount"`
	Ord             string `json:"ord"`
	Currency        string `json:"currency"`
}
