// internal/repository/firestorerepo/store.go
package firestorerepo

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/dzfactories/backend/internal/repository"
)

const (
	factoriesCollection = "factories"
	usersCollection     = "users"
	reviewsCollection   = "reviews"
)

// Store implements repository.Store against Firestore. Each record is a
// document keyed by its generated id. Equality filters map to native
// document predicates; substring search cannot be delegated to Firestore
// and is applied in memory after retrieval.
type Store struct {
	client *firestore.Client
}

// New connects through the Firebase Admin SDK. credentialsFile may be
// empty, in which case application default credentials are used.
func New(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	conf := &firebase.Config{ProjectID: projectID}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, repository.QueryTimeout)
}
