package services

// Owned is implemented by entities that belong to a single user
type Owned interface {
	OwnerID() uint
}

// CanModify reports whether requesterID may change or delete entity
func CanModify(entity Owned, requesterID uint) bool {
	return entity != nil && requesterID != 0 && entity.OwnerID() == requesterID
}
