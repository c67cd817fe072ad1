package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"erp_backend/internals/features/base"
	"erp_backend/internals/features/master/snapshot/service"
	helper "erp_backend/internals/helpers"
)

// Projector is any entity endpoint; the snapshot reuses its list projection.
type Projector interface {
	Name() string
	ProjectAll(db *gorm.DB) ([]any, error)
}

// Collection is one key of the snapshot payload.
type Collection struct {
	Key    string
	Source Projector
}

type SnapshotController struct {
	deps        base.Deps
	collections []Collection
}

func NewSnapshotController(deps base.Deps, collections ...Collection) *SnapshotController {
	return &SnapshotController{deps: deps, collections: collections}
}

// Snapshot reads every collection plus the grouped fees_master in one read-only transaction.
func (h *SnapshotController) Snapshot(db *gorm.DB) (fiber.Map, error) {
	data := fiber.Map{}
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, col := range h.collections {
			rows, err := col.Source.ProjectAll(tx)
			if err != nil {
				return errors.Wrapf(err, "snapshot %s", col.Source.Name())
			}
			data[col.Key] = rows
		}
		groups, err := service.FeesMasterGroups(tx)
		if err != nil {
			return err
		}
		data["fees_master"] = groups
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// GET /api/master/masters/all
func (h *SnapshotController) GetAllMasters(c *fiber.Ctx) error {
	data, err := h.Snapshot(h.deps.Conn(c.UserContext()))
	if err != nil {
		return err
	}
	return helper.Respond(c, helper.OK(data))
}
