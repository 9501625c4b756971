package enums

type HostRole string

const (
	HostRoleLive HostRole = "live"
	HostRoleVR   HostRole = "vr"
)
