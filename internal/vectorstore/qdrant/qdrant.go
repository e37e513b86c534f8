// ABOUTME: Qdrant-backed similarity index over the gRPC collections and points API
// ABOUTME: Namespaces map to a keyword payload field filtered on every search
package qdrant

import (
	"context"
	"fmt"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/acmecloud/askdocs/internal/fault"
	"github.com/acmecloud/askdocs/internal/vectorstore"
)

// namespaceField is the payload key carrying the logical partition.
const namespaceField = "namespace"

// Index is a vectorstore.Index backed by a Qdrant collection with cosine
// distance.
type Index struct {
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
}

// New connects to a Qdrant server at addr (host:port of the gRPC endpoint)
// and scopes the index to the named collection.
func New(addr, collection string) (*Index, error) {
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fault.Wrap(fault.KindIndex, err, "connecting to Qdrant at %s", addr)
	}

	return &Index{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  collection,
	}, nil
}

// Close releases the gRPC connection.
func (x *Index) Close() error {
	return x.conn.Close()
}

// Ensure creates the collection with cosine distance if it does not exist.
// An existing collection with a different vector size is a configuration
// error, not silently reused.
func (x *Index) Ensure(ctx context.Context, dimension int) error {
	list, err := x.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fault.Wrap(fault.KindIndex, err, "listing collections")
	}

	for _, col := range list.GetCollections() {
		if col.GetName() != x.collection {
			continue
		}
		size, err := x.collectionSize(ctx)
		if err != nil {
			return err
		}
		if size != uint64(dimension) {
			return fault.New(fault.KindIndex, "collection %q has dimension %d, configured dimension is %d", x.collection, size, dimension)
		}
		return nil
	}

	_, err = x.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: x.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(dimension),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fault.Wrap(fault.KindIndex, err, "creating collection %q", x.collection)
	}
	return nil
}

func (x *Index) collectionSize(ctx context.Context) (uint64, error) {
	info, err := x.collections.Get(ctx, &qdrantclient.GetCollectionInfoRequest{
		CollectionName: x.collection,
	})
	if err != nil {
		return 0, fault.Wrap(fault.KindIndex, err, "inspecting collection %q", x.collection)
	}
	params := info.GetResult().GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return 0, fault.New(fault.KindIndex, "collection %q has no vector params", x.collection)
	}
	return params.GetSize(), nil
}

// Upsert writes entries as points whose payload carries the namespace plus
// the entry's metadata.
func (x *Index) Upsert(ctx context.Context, namespace string, entries []vectorstore.Entry) error {
	points := make([]*qdrantclient.PointStruct, 0, len(entries))
	for _, e := range entries {
		payload := map[string]*qdrantclient.Value{
			namespaceField: {Kind: &qdrantclient.Value_StringValue{StringValue: namespace}},
		}
		for k, v := range e.Payload {
			payload[k] = &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: v}}
		}

		points = append(points, &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: e.ID},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{Data: e.Vector},
				},
			},
			Payload: payload,
		})
	}

	_, err := x.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: x.collection,
		Points:         points,
	})
	if err != nil {
		return fault.Wrap(fault.KindIndex, err, "upserting %d points", len(points))
	}
	return nil
}

// Query runs a nearest-neighbor search restricted to the namespace and
// returns matches with their payload, best score first.
func (x *Index) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.Match, error) {
	resp, err := x.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: x.collection,
		Vector:         vector,
		Limit:          uint64(topK),
		Filter: &qdrantclient.Filter{
			Must: []*qdrantclient.Condition{{
				ConditionOneOf: &qdrantclient.Condition_Field{
					Field: &qdrantclient.FieldCondition{
						Key: namespaceField,
						Match: &qdrantclient.Match{
							MatchValue: &qdrantclient.Match_Keyword{Keyword: namespace},
						},
					},
				},
			}},
		},
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fault.Wrap(fault.KindIndex, err, "searching collection %q", x.collection)
	}

	matches := make([]vectorstore.Match, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		payload := make(map[string]string, len(point.GetPayload()))
		for k, v := range point.GetPayload() {
			if k == namespaceField {
				continue
			}
			payload[k] = v.GetStringValue()
		}
		matches = append(matches, vectorstore.Match{
			ID:      pointID(point.GetId()),
			Score:   point.GetScore(),
			Payload: payload,
		})
	}
	return matches, nil
}

func pointID(id *qdrantclient.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return fmt.Sprintf("%d", id.GetNum())
}
