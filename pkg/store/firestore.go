package store

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements Store on Cloud Firestore through the Firebase admin
// app. It is the production backend; Memory is its test/dev twin.
type Firestore struct {
	client *firestore.Client
	log    *slog.Logger
}

// NewFirestore connects to the project's Firestore database. credentialsFile
// may be empty, in which case application default credentials are used.
func NewFirestore(ctx context.Context, projectID, credentialsFile string, log *slog.Logger) (*Firestore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Firestore{client: client, log: log}, nil
}

func (f *Firestore) doc(path, id string) *firestore.DocumentRef {
	return f.client.Collection(path).Doc(id)
}

func (f *Firestore) Get(ctx context.Context, path, id string) (Doc, error) {
	snap, err := f.doc(path, id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreErr(err)
	}
	return &fsDoc{snap: snap}, nil
}

func (f *Firestore) Set(ctx context.Context, path, id string, data any) error {
	_, err := f.doc(path, id).Set(ctx, convertSentinels(data))
	return mapFirestoreErr(err)
}

func (f *Firestore) Merge(ctx context.Context, path, id string, fields map[string]any) error {
	_, err := f.doc(path, id).Set(ctx, convertSentinels(fields), firestore.MergeAll)
	return mapFirestoreErr(err)
}

func (f *Firestore) Update(ctx context.Context, path, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: convertSentinels(v)})
	}
	_, err := f.doc(path, id).Update(ctx, updates)
	return mapFirestoreErr(err)
}

func (f *Firestore) Add(ctx context.Context, path string, data map[string]any) (string, error) {
	ref, _, err := f.client.Collection(path).Add(ctx, convertSentinels(data))
	if err != nil {
		return "", mapFirestoreErr(err)
	}
	return ref.ID, nil
}

func (f *Firestore) Delete(ctx context.Context, path, id string) error {
	_, err := f.doc(path, id).Delete(ctx)
	return mapFirestoreErr(err)
}

func (f *Firestore) ArrayUnion(ctx context.Context, path, id, field string, values ...any) error {
	_, err := f.doc(path, id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.ArrayUnion(values...)},
	})
	return mapFirestoreErr(err)
}

func (f *Firestore) ArrayRemove(ctx context.Context, path, id, field string, values ...any) error {
	_, err := f.doc(path, id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.ArrayRemove(values...)},
	})
	return mapFirestoreErr(err)
}

func (f *Firestore) WatchDoc(ctx context.Context, path, id string) <-chan DocEvent {
	ch := make(chan DocEvent, 16)
	iter := f.doc(path, id).Snapshots(ctx)
	go func() {
		defer close(ch)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				f.log.Error("doc watch failed", "path", path, "id", id, "err", err)
				pushDoc(ch, DocEvent{Err: mapFirestoreErr(err)})
				return
			}
			if !snap.Exists() {
				pushDoc(ch, DocEvent{Exists: false})
				continue
			}
			pushDoc(ch, DocEvent{Doc: &fsDoc{snap: snap}, Exists: true})
		}
	}()
	return ch
}

func (f *Firestore) WatchQuery(ctx context.Context, q Query) <-chan QueryEvent {
	ch := make(chan QueryEvent, 16)
	query := f.client.Collection(q.Path).Query
	for _, c := range q.Where {
		query = query.Where(c.Field, c.Op, c.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	iter := query.Snapshots(ctx)
	go func() {
		defer close(ch)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				f.log.Error("query watch failed", "path", q.Path, "err", err)
				pushQuery(ch, QueryEvent{Err: mapFirestoreErr(err)})
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				pushQuery(ch, QueryEvent{Err: mapFirestoreErr(err)})
				continue
			}
			out := make([]Doc, len(docs))
			for i, d := range docs {
				out[i] = &fsDoc{snap: d}
			}
			pushQuery(ch, QueryEvent{Docs: out})
		}
	}()
	return ch
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

// convertSentinels swaps the store sentinel for Firestore's own inside map
// payloads. Struct payloads pass through untouched.
func convertSentinels(v any) any {
	if v == ServerTimestamp {
		return firestore.ServerTimestamp
	}
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, inner := range tv {
			out[k] = convertSentinels(inner)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, inner := range tv {
			out[i] = convertSentinels(inner)
		}
		return out
	default:
		return tv
	}
}

func mapFirestoreErr(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return err
	}
}

type fsDoc struct {
	snap *firestore.DocumentSnapshot
}

func (d *fsDoc) ID() string { return d.snap.Ref.ID }

func (d *fsDoc) Data() map[string]any { return d.snap.Data() }

func (d *fsDoc) DataTo(v any) error { return d.snap.DataTo(v) }
