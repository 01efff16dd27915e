package host

import "strings"

// Actor 是按角色派生的能力集合。
type Actor struct {
	Role    string
	manage  bool
	create  bool
	approve bool
}

// ActorForRole 返回角色对应的能力；未知角色按 guest 处理。
func ActorForRole(role string) Actor {
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case "manager", "teacher":
		return Actor{Role: role, manage: true, create: true, approve: true}
	case "student":
		return Actor{Role: role, create: true}
	default:
		return Actor{Role: "guest"}
	}
}

func (a Actor) CanManageEntries() bool { return a.manage }
func (a Actor) CanCreateEntries() bool { return a.create }
func (a Actor) CanApprove() bool       { return a.approve }
