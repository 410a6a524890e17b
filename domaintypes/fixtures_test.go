package domaintypes_test

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/domain-types-go/domaintypes"
)

var (
	readerCardTypeID     = uuid.MustParse("5b0c38c4-8f0e-4d0a-9d4e-2b1f1c6f7a01")
	shelfMarkTypeID      = uuid.MustParse("5b0c38c4-8f0e-4d0a-9d4e-2b1f1c6f7a02")
	loanReceiptTypeID    = uuid.MustParse("5b0c38c4-8f0e-4d0a-9d4e-2b1f1c6f7a03")
	catalogEntryTypeID   = uuid.MustParse("5b0c38c4-8f0e-4d0a-9d4e-2b1f1c6f7a04")
	overdueNoticeTypeID  = uuid.MustParse("5b0c38c4-8f0e-4d0a-9d4e-2b1f1c6f7a05")
	branchAddressTypeID  = uuid.MustParse("5b0c38c4-8f0e-4d0a-9d4e-2b1f1c6f7a06")
	memberBadgeTypeID    = uuid.MustParse("5b0c38c4-8f0e-4d0a-9d4e-2b1f1c6f7a07")
	inventoryCountTypeID = uuid.MustParse("5b0c38c4-8f0e-4d0a-9d4e-2b1f1c6f7a08")
)

const (
	kindCustomJSON  domaintypes.SerializerKind = "custom-json"
	kindProblemJSON domaintypes.SerializerKind = "problem-json"
	kindPlainText   domaintypes.SerializerKind = "plain-text"
)

// PlainValue has neither declarations nor capabilities.
type PlainValue struct {
	Value string
}

// AnonymousCard serializes itself to JSON but has no type identifier.
type AnonymousCard struct {
	ReaderID string
}

func (c AnonymousCard) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"reader": c.ReaderID})
}

func (c *AnonymousCard) UnmarshalJSON(data []byte) error {
	fields := map[string]string{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	c.ReaderID = fields["reader"]

	return nil
}

// ReaderCard serializes itself to JSON and has a type identifier.
type ReaderCard struct {
	ReaderID string
}

func (c ReaderCard) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"reader": c.ReaderID})
}

func (c *ReaderCard) UnmarshalJSON(data []byte) error {
	fields := map[string]string{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	c.ReaderID = fields["reader"]

	return nil
}

func (ReaderCard) DomainTypeID() uuid.UUID {
	return readerCardTypeID
}

// ShelfMark serializes itself to JSON and XML.
type ShelfMark struct {
	Code string
}

func (m ShelfMark) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"code": m.Code})
}

func (m *ShelfMark) UnmarshalJSON(data []byte) error {
	fields := map[string]string{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	m.Code = fields["code"]

	return nil
}

func (m ShelfMark) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name.Local = "shelfMark"

	return e.EncodeElement(m.Code, start)
}

func (m *ShelfMark) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return d.DecodeElement(&m.Code, &start)
}

func (ShelfMark) DomainTypeID() uuid.UUID {
	return shelfMarkTypeID
}

// LoanReceipt declares JSON and XML, both as default.
type LoanReceipt struct {
	LoanID string
}

func (LoanReceipt) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{
		domaintypes.DeclareDefault(domaintypes.SerializerKindJSON),
		domaintypes.DeclareDefault(domaintypes.SerializerKindXML),
	}
}

func (LoanReceipt) DomainTypeID() uuid.UUID {
	return loanReceiptTypeID
}

// CatalogEntry declares JSON and a custom serializer that also reports application/json.
type CatalogEntry struct {
	ISBN string
}

func (CatalogEntry) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{
		domaintypes.Declare(domaintypes.SerializerKindJSON),
		domaintypes.Declare(kindCustomJSON),
	}
}

func (CatalogEntry) DomainTypeID() uuid.UUID {
	return catalogEntryTypeID
}

// OverdueNotice declares XML but can only be built with arguments.
type OverdueNotice struct {
	LoanID string
	days   int
}

func NewOverdueNotice(loanID string, days int) OverdueNotice {
	return OverdueNotice{LoanID: loanID, days: days}
}

func (OverdueNotice) ParameterizedConstructor() {}

func (OverdueNotice) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{domaintypes.Declare(domaintypes.SerializerKindXML)}
}

func (OverdueNotice) DomainTypeID() uuid.UUID {
	return overdueNoticeTypeID
}

// BranchAddress is an XML record that also declares JSON and YAML.
type BranchAddress struct {
	domaintypes.XMLRecord `json:"-" yaml:"-" xml:"-"`

	Street string `json:"street" yaml:"street" xml:"street"`
	City   string `json:"city" yaml:"city" xml:"city"`
}

func (BranchAddress) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{
		domaintypes.Declare(domaintypes.SerializerKindJSON),
		domaintypes.Declare(domaintypes.SerializerKindXML),
		domaintypes.Declare(domaintypes.SerializerKindYAML),
	}
}

func (BranchAddress) DomainTypeID() uuid.UUID {
	return branchAddressTypeID
}

// MemberBadge declares JSON twice, the second time as default, plus CBOR.
type MemberBadge struct {
	MemberID string `json:"memberId" cbor:"memberId"`
	Level    int    `json:"level" cbor:"level"`
}

func (MemberBadge) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{
		domaintypes.Declare(domaintypes.SerializerKindCBOR),
		domaintypes.Declare(domaintypes.SerializerKindJSON),
		domaintypes.DeclareDefault(domaintypes.SerializerKindJSON),
	}
}

func (MemberBadge) DomainTypeID() uuid.UUID {
	return memberBadgeTypeID
}

// InventoryCount declares serializers without any JSON flavour.
type InventoryCount struct {
	Branch string `yaml:"branch" cbor:"branch"`
	Copies int    `yaml:"copies" cbor:"copies"`
}

func (InventoryCount) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{
		domaintypes.Declare(domaintypes.SerializerKindYAML),
		domaintypes.Declare(domaintypes.SerializerKindCBOR),
	}
}

func (InventoryCount) DomainTypeID() uuid.UUID {
	return inventoryCountTypeID
}

// stubSerializer reports a fixed content type.
type stubSerializer struct {
	contentType string
}

func (s stubSerializer) ContentType() string {
	return s.contentType
}

func (s stubSerializer) Marshal(_ any) ([]byte, error) {
	return nil, errors.New("stub serializer does not marshal")
}

func (s stubSerializer) Unmarshal(_ []byte, _ any) error {
	return errors.New("stub serializer does not unmarshal")
}

func stubFactory(contentType string) domaintypes.SerializerFactory {
	return func() domaintypes.Serializer {
		return stubSerializer{contentType: contentType}
	}
}

// catalogWithCustomKinds is the default catalog extended by the custom test kinds.
func catalogWithCustomKinds() *domaintypes.Catalog {
	catalog := domaintypes.DefaultCatalog()
	_ = catalog.Register(kindCustomJSON, stubFactory("application/json"))
	_ = catalog.Register(kindProblemJSON, stubFactory("application/problem+json"))
	_ = catalog.Register(kindPlainText, stubFactory("text/plain"))

	return catalog
}

// countingIntrospector counts how often the candidates are inspected.
type countingIntrospector struct {
	domaintypes.Introspector
	calls atomic.Int64
}

func (c *countingIntrospector) Capabilities(candidate domaintypes.Candidate) domaintypes.Capabilities {
	c.calls.Add(1)

	return c.Introspector.Capabilities(candidate)
}

// ShelvingPlan derives its declarations from items that its zero value does not have.
type ShelvingPlan struct {
	items []domaintypes.SerializerKind
}

func (p *ShelvingPlan) DomainSerializers() []domaintypes.Declaration {
	return []domaintypes.Declaration{domaintypes.Declare(p.items[0])}
}

// panickingIntrospector fails on every inspection and counts how often it was asked.
type panickingIntrospector struct {
	domaintypes.Introspector
	calls atomic.Int64
}

func (p *panickingIntrospector) Capabilities(_ domaintypes.Candidate) domaintypes.Capabilities {
	p.calls.Add(1)

	panic("introspection failed")
}
