package helper

import (
	"context"
	"log"
	"mime/multipart"
	"space_manager/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Cloudinary init failed: %v", err)
	}
	return cld
}

// UploadSpaceImage stores a space photo and returns its public ID.
func UploadSpaceImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	cld := InitCloudinary()
	result, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder: "spaces",
	})
	if err != nil {
		return "", err
	}
	return result.PublicID, nil
}

// DeleteSpaceImage removes a previously uploaded space photo. Best
// effort, callers log the error at most.
func DeleteSpaceImage(ctx context.Context, publicID string) error {
	cld := InitCloudinary()
	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
