package memory

import "pet-social/internal/domain/pets"

func petWithPhotos(photos ...string) pets.Pet {
	return pets.Pet{OwnerID: 1, Name: "Rex", IsPublic: true, Photos: photos}
}
