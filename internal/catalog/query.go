package catalog

import "strings"

// ListParams is the shared filter/search/paging contract used by the
// public catalog, the admin gear listing and the admin user listing.
type ListParams struct {
	Category string
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// NormalizeSearch trims and case-folds a raw search term. An empty result
// disables the search clause.
func NormalizeSearch(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Paginate clamps a requested page into range and derives the page count
// and row offset. pages = max(1, ceil(total/pageSize)); a page past the
// end resolves to the last page instead of an empty result.
func Paginate(total, page, pageSize int) (clampedPage, pages, offset int) {
	pages = (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	return page, pages, (page - 1) * pageSize
}

const gearColumns = "id, name, category, brand, price, in_stock, rating, description, image_url"

// gearOrderClause maps a sort key to a deterministic ORDER BY. Ties always
// resolve through LOWER(name) so equal keys keep a stable order across
// pages. Unknown keys fall back to the audience default: relevance for
// the public listing, name_asc for admin.
func gearOrderClause(sort, search string, admin bool) string {
	switch sort {
	case "price_asc":
		return " ORDER BY price ASC, LOWER(name) ASC"
	case "price_desc":
		return " ORDER BY price DESC, LOWER(name) ASC"
	case "name_asc":
		return " ORDER BY LOWER(name) ASC"
	case "name_desc":
		return " ORDER BY LOWER(name) DESC"
	case "rating_desc":
		// NULL ratings sort after rated items.
		return " ORDER BY (rating IS NULL) ASC, rating DESC, LOWER(name) ASC"
	case "in_stock":
		if !admin {
			return " ORDER BY in_stock DESC, price ASC, LOWER(name) ASC"
		}
	case "id_asc":
		if admin {
			return " ORDER BY id ASC"
		}
	case "id_desc":
		if admin {
			return " ORDER BY id DESC"
		}
	}

	if admin {
		return " ORDER BY LOWER(name) ASC"
	}
	if search != "" {
		// Relevance: earliest match position first, shorter names first.
		return " ORDER BY INSTR(LOWER(name), ?) ASC, LENGTH(name) ASC, LOWER(name) ASC"
	}
	return " ORDER BY LOWER(name) ASC"
}

// BuildGearQueries produces the count and list statements for a gear
// listing. The count runs against the filtered+searched set before paging;
// the list statement ends with LIMIT ?/OFFSET ? placeholders the caller
// fills in after clamping the page.
func BuildGearQueries(p ListParams, admin bool) (countSQL string, countArgs []interface{}, listSQL string, listArgs []interface{}) {
	var where strings.Builder
	var args []interface{}

	if p.Category != "" {
		where.WriteString(" WHERE category = ?")
		args = append(args, p.Category)
	}
	search := NormalizeSearch(p.Search)
	if search != "" {
		if where.Len() == 0 {
			where.WriteString(" WHERE ")
		} else {
			where.WriteString(" AND ")
		}
		where.WriteString("LOWER(name) LIKE ?")
		args = append(args, "%"+search+"%")
	}

	countSQL = "SELECT COUNT(id) FROM gear_items" + where.String()
	countArgs = append(countArgs, args...)

	order := gearOrderClause(p.Sort, search, admin)
	listSQL = "SELECT " + gearColumns + " FROM gear_items" + where.String() + order + " LIMIT ? OFFSET ?"
	listArgs = append(listArgs, args...)
	if strings.Contains(order, "INSTR") {
		listArgs = append(listArgs, search)
	}
	return countSQL, countArgs, listSQL, listArgs
}

// userOrderClause maps admin user-listing sort keys. admin_first puts
// admins on top ordered by id, then regular users ordered by id.
func userOrderClause(sort string) string {
	switch sort {
	case "username_asc":
		return " ORDER BY LOWER(username) ASC"
	case "username_desc":
		return " ORDER BY LOWER(username) DESC"
	case "id_asc":
		return " ORDER BY id ASC"
	case "id_desc":
		return " ORDER BY id DESC"
	default: // admin_first
		return " ORDER BY is_admin DESC, id ASC"
	}
}

// BuildUserQueries produces the count and list statements for the admin
// user listing, under the same pagination contract as the catalog.
func BuildUserQueries(p ListParams) (countSQL string, countArgs []interface{}, listSQL string, listArgs []interface{}) {
	var where string
	var args []interface{}

	search := NormalizeSearch(p.Search)
	if search != "" {
		where = " WHERE LOWER(username) LIKE ?"
		args = append(args, "%"+search+"%")
	}

	countSQL = "SELECT COUNT(id) FROM users" + where
	countArgs = append(countArgs, args...)

	listSQL = "SELECT id, username, is_admin FROM users" + where + userOrderClause(p.Sort) + " LIMIT ? OFFSET ?"
	listArgs = append(listArgs, args...)
	return countSQL, countArgs, listSQL, listArgs
}
