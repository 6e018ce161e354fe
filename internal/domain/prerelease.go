package domain

import "time"

// PreReleaseCard is one entry of the pre-release dataset, a secondary JSON
// resource polled via ETag/Last-Modified change detection.
type PreReleaseCard struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Desc          string `json:"desc"`
	OverallString string `json:"overallString"`
	PicURL        string `json:"picUrl"`
	CreateTime    int64  `json:"createTime"`
	UpdateTime    int64  `json:"updateTime"`
	Created       bool   `json:"created"`
	Updated       bool   `json:"updated"`

	CreateCommit string `json:"createCommit,omitempty"`
	UpdateCommit string `json:"updateCommit,omitempty"`
}

// IsNew reports whether the card was added or changed in the latest drop.
func (p PreReleaseCard) IsNew() bool { return p.Created || p.Updated }

// StatusLabel returns a short badge text, empty when the card is unchanged.
func (p PreReleaseCard) StatusLabel() string {
	switch {
	case p.Created:
		return "NEW"
	case p.Updated:
		return "更新"
	}
	return ""
}

// CreateDate formats the creation timestamp.
func (p PreReleaseCard) CreateDate() string {
	return time.Unix(p.CreateTime, 0).Format("2006-01-02")
}

// UpdateDate formats the last-update timestamp.
func (p PreReleaseCard) UpdateDate() string {
	return time.Unix(p.UpdateTime, 0).Format("2006-01-02 15:04")
}
