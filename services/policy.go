package services

import "inkwell-cms/models"

// Operation names an action gated by a role.
type Operation string

const (
	OpUploadDocument Operation = "upload_document"
	OpCreateArticle  Operation = "create_article"
	OpListPending    Operation = "list_pending"
	OpApproveArticle Operation = "approve_article"
	OpRejectArticle  Operation = "reject_article"
	OpEditArticle    Operation = "edit_article"
	OpExportArticle  Operation = "export_article"
	OpManageRoles    Operation = "manage_roles"
	OpViewAnyArticle Operation = "view_any_article"
)

type rule struct {
	allowed func(models.Actor) bool
	message string
}

func isWriter(a models.Actor) bool { return a.IsWriter }

func isAdmin(a models.Actor) bool { return a.IsAdmin }

func anyone(models.Actor) bool { return true }

var policy = map[Operation]rule{
	OpUploadDocument: {isWriter, "writer role required"},
	OpCreateArticle:  {isWriter, "writer role required"},
	OpListPending:    {isAdmin, "admin role required"},
	OpApproveArticle: {isAdmin, "admin role required"},
	OpRejectArticle:  {isAdmin, "admin role required"},
	OpEditArticle:    {isAdmin, "admin role required"},
	OpManageRoles:    {isAdmin, "admin role required"},
	OpViewAnyArticle: {isAdmin, "admin role required"},
	OpExportArticle:  {anyone, ""},
}

// Authorize returns a forbidden error unless actor may perform op.
// Unknown operations are denied.
func Authorize(actor models.Actor, op Operation) error {
	r, ok := policy[op]
	if !ok {
		return models.ForbiddenError("operation not permitted")
	}
	if !r.allowed(actor) {
		return models.ForbiddenError(r.message)
	}
	return nil
}
