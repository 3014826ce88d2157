package model

import (
	core "nurse-directory/pkg/core/nurse/model"
	"nurse-directory/pkg/core/nurse/service"
)

// 请求/响应数据结构
type (
	// CreateNurseReq uses pointers so an absent key can default.
	CreateNurseReq struct {
		User         *string `json:"user"`
		Pw           *string `json:"pw"`
		Name         *string `json:"name"`
		Title        *string `json:"title"`
		Specialty    *string `json:"specialty"`
		Description  *string `json:"description"`
		Location     *string `json:"location"`
		Availability *string `json:"availability"`
		Image        *string `json:"image"`
	}

	ListNurseReq struct {
		Name         string `query:"name"`
		Specialty    string `query:"specialty"`
		Location     string `query:"location"`
		Availability string `query:"availability"`
	}

	LoginReq struct {
		User string `json:"user"`
		Pw   string `json:"pw"`
	}

	// NurseRes is the public record: everything except pw.
	NurseRes struct {
		ID           int64   `json:"id"`
		User         string  `json:"user"`
		Name         string  `json:"name"`
		Title        *string `json:"title"`
		Specialty    *string `json:"specialty"`
		Description  *string `json:"description"`
		Location     *string `json:"location"`
		Availability *string `json:"availability"`
		Image        *string `json:"image"`
	}

	LoginRes struct {
		Success bool      `json:"success"`
		Message string    `json:"message"`
		Nurse   *NurseRes `json:"nurse,omitempty"`
	}

	ErrorRes struct {
		Error string `json:"error"`
	}
)

func (r CreateNurseReq) Input() service.CreateInput {
	return service.CreateInput{
		User:         r.User,
		Pw:           r.Pw,
		Name:         r.Name,
		Title:        r.Title,
		Specialty:    r.Specialty,
		Description:  r.Description,
		Location:     r.Location,
		Availability: r.Availability,
		Image:        r.Image,
	}
}

func (r ListNurseReq) Filter() core.Filter {
	return core.Filter{
		Name:         r.Name,
		Specialty:    r.Specialty,
		Location:     r.Location,
		Availability: r.Availability,
	}
}

// NewNurseRes is the only projection from a stored record to a response.
func NewNurseRes(n core.Nurse) NurseRes {
	return NurseRes{
		ID:           n.ID,
		User:         n.User,
		Name:         n.Name,
		Title:        n.Title,
		Specialty:    n.Specialty,
		Description:  n.Description,
		Location:     n.Location,
		Availability: n.Availability,
		Image:        n.Image,
	}
}

func NewNurseResList(nurses []core.Nurse) []NurseRes {
	out := make([]NurseRes, 0, len(nurses))
	for _, n := range nurses {
		out = append(out, NewNurseRes(n))
	}
	return out
}
