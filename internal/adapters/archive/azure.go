package archive

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureLister implements ArchiveLister for the NOAA Open Data mirror on
// Azure Blob Storage, where each satellite is a public container under one
// storage account (e.g. https://goeseuwest.blob.core.windows.net/noaa-goes19).
type AzureLister struct {
	client *azblob.Client
}

// AzureConfig holds Azure Blob archive configuration.
type AzureConfig struct {
	ServiceURL string
}

// NewAzureLister creates a new Azure Blob archive lister. The mirror is
// public, so no credential is attached.
func NewAzureLister(cfg AzureConfig) (*AzureLister, error) {
	client, err := azblob.NewClientWithNoCredential(cfg.ServiceURL, nil)
	if err != nil {
		return nil, err
	}
	return &AzureLister{client: client}, nil
}

// List returns the blob names under the given prefix. The first prefix
// segment selects the container (the satellite id); returned keys include
// it again so they match the S3 lister's addressing. Blob listings are
// ordered by name.
func (l *AzureLister) List(ctx context.Context, prefix string) ([]string, error) {
	container, rest, err := SplitPrefix(prefix)
	if err != nil {
		return nil, err
	}

	var keys []string

	pager := l.client.NewListBlobsFlatPager(container, &azblob.ListBlobsFlatOptions{
		Prefix: &rest,
	})

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, blob := range page.Segment.BlobItems {
			if blob.Name == nil {
				continue
			}
			keys = append(keys, container+"/"+*blob.Name)
		}
	}

	return keys, nil
}
