package entity

const (
	defaultContactName = "No name"
	defaultEmail       = "N/A"
)

// Contact is a read-only view over a sender fragment.
type Contact struct {
	raw Fragment
}

func NewContact(fragment Fragment) *Contact {
	return &Contact{raw: fragment}
}

func (c *Contact) ID() (int64, bool) {
	return intValue(c.raw, "id")
}

func (c *Contact) Name() string {
	return stringValue(c.raw, "name", defaultContactName)
}

func (c *Contact) Email() string {
	return stringValue(c.raw, "email", defaultEmail)
}

func (c *Contact) PhoneNumber() string {
	return stringValue(c.raw, "phone_number", "")
}

func (c *Contact) Thumbnail() string {
	return stringValue(c.raw, "thumbnail", "")
}

// CompanyName reads the contact's company, empty when the host sent none.
func (c *Contact) CompanyName() string {
	return stringValue(c.raw, "company_name", "")
}

// CustomAttributes returns the host-defined attribute bag, empty when absent.
func (c *Contact) CustomAttributes() Fragment {
	attrs := mapValue(c.raw, "custom_attributes")
	if attrs == nil {
		return Fragment{}
	}
	return attrs
}

// Raw returns a deep, independently mutable copy of the backing fragment.
func (c *Contact) Raw() Fragment {
	return cloneFragment(c.raw)
}
