package shared

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"cloud.google.com/go/storage"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "straightenup/internal/infra/config"
	"straightenup/internal/infra/database"
	firestoreinfra "straightenup/internal/infra/firestore"
)

// sendGridSecretID is the Secret Manager secret consulted when
// SENDGRID_API_KEY is not set in the environment.
const sendGridSecretID = "sendgrid-api-key"

// Infra is the shared runtime infrastructure for DI.
// - owns external clients (Firestore/FirebaseAuth/GCS/SecretManager/Postgres)
// - owns env/config-resolved runtime settings
//
// Infra must NOT depend on routers, handlers, or usecases.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestoreinfra.ClientWrapper
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
	DB            *database.DB

	// Resolved once
	SendGridAPIKey     string
	ProductImageBucket string
}

// NewInfra initializes shared infra.
// Firestore and Postgres are strict (return error).
// Firebase/Auth, GCS and SecretManager are best-effort (warn + continue).
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	inf := &Infra{
		Config:             cfg,
		ProjectID:          projectID,
		ProductImageBucket: strings.TrimSpace(cfg.ProductImageBucket),
	}

	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] Using credentials file for GCP clients")
	} else {
		log.Printf("[shared.infra] Using Application Default Credentials")
	}

	// 1) Firestore (strict)
	fsClient, err := firestoreinfra.NewClient(ctx, projectID, credFile)
	if err != nil {
		return nil, fmt.Errorf("shared.infra: firestore init failed (project=%s): %w", projectID, err)
	}
	inf.Firestore = fsClient

	// 2) Postgres (strict)
	db, err := database.NewConnection(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		_ = inf.Firestore.Close()
		return nil, fmt.Errorf("shared.infra: postgres init failed: %w", err)
	}
	inf.DB = db

	// 3) GCS (best-effort; product image upload degrades without it)
	{
		var gcsClient *storage.Client
		var err error
		if len(clientOpts) > 0 {
			gcsClient, err = storage.NewClient(ctx, clientOpts...)
		} else {
			gcsClient, err = storage.NewClient(ctx)
		}
		if err != nil {
			log.Printf("[shared.infra] WARN: storage.NewClient failed: %v (image upload disabled)", err)
		} else {
			inf.GCS = gcsClient
			log.Printf("[shared.infra] GCS storage client initialized")
		}
	}

	// 4) Secret Manager (best-effort; env var fallback covers local dev)
	{
		var sm *secretmanager.Client
		var err error
		if len(clientOpts) > 0 {
			sm, err = secretmanager.NewClient(ctx, clientOpts...)
		} else {
			sm, err = secretmanager.NewClient(ctx)
		}
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// 5) Firebase App/Auth (best-effort; authed routes 401 without it)
	{
		fbCfg := &firebase.Config{ProjectID: strings.TrimSpace(cfg.FirebaseProjectID)}
		var fbApp *firebase.App
		var err error
		if len(clientOpts) > 0 {
			fbApp, err = firebase.NewApp(ctx, fbCfg, clientOpts...)
		} else {
			fbApp, err = firebase.NewApp(ctx, fbCfg)
		}
		if err != nil {
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[shared.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[shared.infra] Firebase Auth initialized")
			}
		}
	}

	// 6) SendGrid key: env first, then Secret Manager
	inf.SendGridAPIKey = inf.resolveSendGridKey(ctx)

	return inf, nil
}

func (inf *Infra) resolveSendGridKey(ctx context.Context) string {
	if key := strings.TrimSpace(inf.Config.SendGridAPIKey); key != "" {
		return key
	}
	if inf.SecretManager == nil {
		log.Printf("[shared.infra] WARN: SENDGRID_API_KEY is empty and Secret Manager is unavailable (mail disabled)")
		return ""
	}

	name := "projects/" + inf.ProjectID + "/secrets/" + sendGridSecretID + "/versions/latest"
	resp, err := inf.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		log.Printf("[shared.infra] WARN: AccessSecretVersion failed for %s: %v (mail disabled)", sendGridSecretID, err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		log.Printf("[shared.infra] WARN: empty secret payload for %s (mail disabled)", sendGridSecretID)
		return ""
	}
	return strings.TrimSpace(string(resp.Payload.Data))
}

// Close releases all owned clients. Safe on a partially initialized Infra.
func (inf *Infra) Close() {
	if inf == nil {
		return
	}
	if inf.DB != nil {
		if err := inf.DB.Close(); err != nil {
			log.Printf("[shared.infra] WARN: postgres close failed: %v", err)
		}
	}
	if inf.Firestore != nil {
		if err := inf.Firestore.Close(); err != nil {
			log.Printf("[shared.infra] WARN: firestore close failed: %v", err)
		}
	}
	if inf.GCS != nil {
		if err := inf.GCS.Close(); err != nil {
			log.Printf("[shared.infra] WARN: gcs close failed: %v", err)
		}
	}
	if inf.SecretManager != nil {
		if err := inf.SecretManager.Close(); err != nil {
			log.Printf("[shared.infra] WARN: secretmanager close failed: %v", err)
		}
	}
}
