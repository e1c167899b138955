package model

import (
	"sportshub/shared/constant"
	"sportshub/shared/failure"
	gModel "sportshub/shared/model"
)

// Authorize admits the owning player, users of the owning club, and the
// platform roles.
func Authorize(requester gModel.Requester, playerID, clubID string) error {
	switch requester.Role {
	case constant.RoleAdmin, constant.RoleSystem:
		return nil
	case constant.RolePlayer:
		if requester.ID != "" && requester.ID == playerID {
			return nil
		}
	case constant.RoleClub:
		if requester.ClubID != "" && requester.ClubID == clubID {
			return nil
		}
	}

	return failure.ForbiddenWithReason(failure.ReasonNotOwner, "requester does not own this record")
}

// AuthorizeClub admits only the owning club and the platform roles.
func AuthorizeClub(requester gModel.Requester, clubID string) error {
	if requester.Role == constant.RolePlayer {
		return failure.ForbiddenWithReason(failure.ReasonNotOwner, "only the club can perform this action")
	}

	return Authorize(requester, "", clubID)
}
